package project

import (
	"context"
	"os"
	"path/filepath"

	"github.com/skald-studio/skald"
	"github.com/skald-studio/skald/internal/content"
	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/feed"
)

// Assemble turns a loaded config into a running App: one detail route per
// collection, plus optional paginated index and feed.
func Assemble(dir string, cfg *Config) (*skald.App, error) {
	var routes []skald.Route

	for _, col := range cfg.Collections {
		col := col
		load := collectionLoader(dir, cfg, col)

		routes = append(routes, skald.NewPage(col.Route, col.Template,
			skald.WithStaticPaths(func(ctx context.Context) ([]core.StaticPath, error) {
				entries, err := load()
				if err != nil {
					return nil, err
				}
				paths := make([]core.StaticPath, 0, len(entries))
				for _, e := range entries {
					paths = append(paths, core.StaticPath{
						Params: map[string]string{"slug": e.Slug},
						Props:  map[string]any{"entry": e},
					})
				}
				return paths, nil
			}),
		))

		if col.Index != nil {
			indexOpts := []skald.PageOption{
				skald.WithPagination(func(ctx context.Context) ([]any, error) {
					entries, err := load()
					if err != nil {
						return nil, err
					}
					items := make([]any, len(entries))
					for i, e := range entries {
						items[i] = e
					}
					return items, nil
				}, col.Index.Paginate),
			}

			if col.Feed != nil {
				indexOpts = append(indexOpts, skald.WithFeed(feedLoader(cfg, col, load)))
			}

			routes = append(routes, skald.NewPage(col.Index.Route, col.Index.Template, indexOpts...))
		}
	}

	return skald.New(skald.Config{
		Title:        cfg.Title,
		BaseURL:      cfg.BaseURL,
		Params:       cfg.Params,
		ContentDir:   filepath.Join(dir, cfg.ContentDir),
		TemplatesDir: filepath.Join(dir, cfg.TemplatesDir),
		PublicDir:    filepath.Join(dir, cfg.PublicDir),
		OutputDir:    filepath.Join(dir, cfg.OutputDir),
		PageSize:     cfg.PageSize,
	}, routes...)
}

func collectionLoader(dir string, cfg *Config, col Collection) func() ([]content.Entry, error) {
	root := filepath.Join(dir, cfg.ContentDir, col.Source)
	return func() ([]content.Entry, error) {
		return content.Load(os.DirFS(root), ".", content.Options{
			RoutePattern:  col.Route,
			IncludeDrafts: core.IsDev(),
		})
	}
}

func feedLoader(cfg *Config, col Collection, load func() ([]content.Entry, error)) core.FeedLoader {
	return func(ctx context.Context) (feed.Options, error) {
		entries, err := load()
		if err != nil {
			return feed.Options{}, err
		}

		opts := feed.Options{
			Title:       col.Feed.Title,
			Description: col.Feed.Description,
			Site:        cfg.BaseURL,
			Dest:        col.Feed.Dest,
			Stylesheet:  col.Feed.Stylesheet,
		}
		for _, e := range entries {
			opts.Items = append(opts.Items, feed.Item{
				Title:       e.Title,
				Link:        e.URL,
				Description: e.Description,
				PubDate:     e.Date,
			})
		}
		return opts, nil
	}
}
