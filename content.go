package skald

import (
	"os"

	"github.com/skald-studio/skald/internal/content"
	"github.com/skald-studio/skald/internal/core"
)

type (
	// Entry is one loaded content file.
	Entry = content.Entry
	// ContentOptions controls collection loading.
	ContentOptions = content.Options
)

// LoadContent loads a markdown collection from dir, sorted by date
// descending. Drafts are included automatically in dev so they can be
// previewed; prod and export builds exclude them unless IncludeDrafts is
// set explicitly.
func LoadContent(dir string, opts ContentOptions) ([]Entry, error) {
	if core.IsDev() {
		opts.IncludeDrafts = true
	}
	return content.Load(os.DirFS(dir), ".", opts)
}
