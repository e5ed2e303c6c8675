package core

import (
	"context"
	"net/http"

	"github.com/skald-studio/skald/internal/feed"
)

// PropsLoader supplies per-request props when a page renders at request time.
type PropsLoader func(*http.Request) (map[string]any, error)

// StaticPath is one concrete resolution of a placeholder route: the params
// that fill the pattern and the props the template renders with.
type StaticPath struct {
	Params map[string]string
	Props  map[string]any
}

// StaticPathsLoader resolves a dynamic route to its concrete paths at build
// time (and per request in dev, so content edits show up without a restart).
type StaticPathsLoader func(context.Context) ([]StaticPath, error)

// ItemsLoader supplies the ordered collection a paginated route splits up.
type ItemsLoader func(context.Context) ([]any, error)

// FeedLoader builds the feed attached to a route.
type FeedLoader func(context.Context) (feed.Options, error)

type PaginateConfig struct {
	Loader ItemsLoader
	Size   int
}

type PageConfig struct {
	Pattern      string
	TemplatePath string
	Props        PropsLoader
	StaticPaths  StaticPathsLoader
	Paginate     *PaginateConfig
	Feed         FeedLoader
}

// Prerendered reports whether every concrete path of this route is known at
// build time.
func (c *PageConfig) Prerendered() bool {
	return c.Props == nil
}

type PageOption func(*PageConfig)

func WithProps(loader PropsLoader) PageOption {
	return func(c *PageConfig) {
		c.Props = loader
	}
}

func WithStaticPaths(loader StaticPathsLoader) PageOption {
	return func(c *PageConfig) {
		c.StaticPaths = loader
	}
}

func WithPagination(loader ItemsLoader, size int) PageOption {
	return func(c *PageConfig) {
		c.Paginate = &PaginateConfig{Loader: loader, Size: size}
	}
}

func WithFeed(loader FeedLoader) PageOption {
	return func(c *PageConfig) {
		c.Feed = loader
	}
}
