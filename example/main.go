package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/skald-studio/skald"
)

func main() {
	loadPosts := func() ([]skald.Entry, error) {
		return skald.LoadContent("content/posts", skald.ContentOptions{
			RoutePattern: "/posts/{slug}",
		})
	}

	app, err := skald.New(
		skald.Config{
			Title:   "Skald Example",
			BaseURL: "http://localhost:8080",
		},

		skald.NewPage("/", "index.html", skald.WithPagination(func(ctx context.Context) ([]any, error) {
			posts, err := loadPosts()
			if err != nil {
				return nil, err
			}
			items := make([]any, len(posts))
			for i, p := range posts {
				items[i] = p
			}
			return items, nil
		}, 5), skald.WithFeed(func(ctx context.Context) (skald.FeedOptions, error) {
			posts, err := loadPosts()
			if err != nil {
				return skald.FeedOptions{}, err
			}
			opts := skald.FeedOptions{
				Title:       "Skald Example",
				Description: "Posts from the example site",
				Site:        "http://localhost:8080",
				Dest:        "/feed/posts.xml",
			}
			for _, p := range posts {
				opts.Items = append(opts.Items, skald.FeedItem{
					Title:       p.Title,
					Link:        p.URL,
					Description: p.Description,
					PubDate:     p.Date,
				})
			}
			return opts, nil
		})),

		skald.NewPage("/posts/{slug}", "post.html", skald.WithStaticPaths(func(ctx context.Context) ([]skald.StaticPath, error) {
			posts, err := loadPosts()
			if err != nil {
				return nil, err
			}
			paths := make([]skald.StaticPath, 0, len(posts))
			for _, p := range posts {
				paths = append(paths, skald.StaticPath{
					Params: map[string]string{"slug": p.Slug},
					Props:  map[string]any{"entry": p},
				})
			}
			return paths, nil
		})),

		skald.NewPage("/about", "about.html"),
	)
	if err != nil {
		log.Fatalf("failed to create site: %v", err)
	}
	defer app.Stop()

	addr := ":8080"
	slog.Info("serving", "addr", addr, "dev", skald.IsDev())
	if err := http.ListenAndServe(addr, app.Handler()); err != nil {
		log.Fatal(err)
	}
}
