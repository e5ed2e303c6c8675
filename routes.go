package skald

import (
	"fmt"

	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/feed"
)

type (
	PropsLoader       = core.PropsLoader
	StaticPath        = core.StaticPath
	StaticPathsLoader = core.StaticPathsLoader
	ItemsLoader       = core.ItemsLoader
	FeedLoader        = core.FeedLoader
	PageOption        = core.PageOption

	FeedOptions = feed.Options
	FeedItem    = feed.Item
)

// Route binds a URL pattern to a template. Patterns may contain placeholder
// segments: NewPage("/posts/{slug}", "post.html", WithStaticPaths(loader)).
type Route struct {
	Pattern      string
	TemplatePath string
	Options      []PageOption
}

func NewPage(pattern string, templatePath string, opts ...PageOption) Route {
	return Route{
		Pattern:      pattern,
		TemplatePath: templatePath,
		Options:      opts,
	}
}

func (r Route) config() (core.PageConfig, error) {
	if err := core.ValidateRoutePath(r.Pattern); err != nil {
		return core.PageConfig{}, err
	}

	config := core.PageConfig{
		Pattern:      core.NormalizePath(r.Pattern),
		TemplatePath: r.TemplatePath,
	}
	for _, opt := range r.Options {
		opt(&config)
	}

	// Page URLs append /page/N to the pattern, which only works for concrete
	// base paths.
	if config.Paginate != nil && core.HasParams(config.Pattern) {
		return core.PageConfig{}, fmt.Errorf("route %s: pagination cannot be combined with placeholder segments", r.Pattern)
	}

	return config, nil
}

// WithProps attaches a per-request props loader; the route renders at
// request time.
func WithProps(loader PropsLoader) PageOption {
	return core.WithProps(loader)
}

// WithStaticPaths resolves a placeholder route to concrete paths at build
// time.
func WithStaticPaths(loader StaticPathsLoader) PageOption {
	return core.WithStaticPaths(loader)
}

// WithPagination splits the loaded collection into pages of at most size
// items, one generated page each.
func WithPagination(loader ItemsLoader, size int) PageOption {
	return core.WithPagination(loader, size)
}

// WithFeed generates an RSS feed alongside the route.
func WithFeed(loader FeedLoader) PageOption {
	return core.WithFeed(loader)
}
