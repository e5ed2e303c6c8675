package skald

import (
	"github.com/skald-studio/skald/internal/core"
)

// DefaultPageSize is used when a pagination size is zero or negative.
const DefaultPageSize = core.DefaultPageSize

type (
	// PageOf is one generated page of a paginated collection.
	PageOf[T any] = core.PageOf[T]
	PageURL       = core.PageURL
)

// Paginate splits an ordered collection into pages with navigation metadata.
// Page 1 lives at base, page N at base/page/N.
func Paginate[T any](items []T, base string, size int) []PageOf[T] {
	return core.Paginate(items, base, size)
}
