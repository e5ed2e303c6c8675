// Package skald is a content-driven static-site build framework: declare
// routes against templates and content collections, serve the site live in
// dev, export it as static files for production.
package skald

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/skald-studio/skald/internal/build"
	"github.com/skald-studio/skald/internal/content"
	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/feed"
	"github.com/skald-studio/skald/internal/render"
	"github.com/skald-studio/skald/internal/server"
)

// Config holds site-wide settings. Zero values fall back to the conventional
// project layout: content/, templates/, public/, dist/.
type Config struct {
	Title        string
	BaseURL      string
	Params       map[string]any
	ContentDir   string
	TemplatesDir string
	PublicDir    string
	OutputDir    string
	PageSize     int
	CacheTTL     time.Duration
}

func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = "templates"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.PageSize <= 0 {
		c.PageSize = core.DefaultPageSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Second
	}
}

// Router is the minimal surface Wrap needs; http.ServeMux satisfies it, as
// do chi and friends.
type Router interface {
	http.Handler
	Handle(pattern string, handler http.Handler)
}

type App struct {
	cfg      Config
	mode     core.Mode
	routes   []Route
	configs  []core.PageConfig
	engine   *render.Engine
	cache    *render.Cache
	manifest *core.Manifest
	reload   *server.Reload
	watcher  *content.Watcher
}

func New(cfg Config, routes ...Route) (*App, error) {
	cfg.applyDefaults()
	mode := core.DetectMode()

	app := &App{
		cfg:    cfg,
		mode:   mode,
		routes: routes,
		cache:  render.NewCache(cfg.CacheTTL),
	}

	for _, route := range routes {
		config, err := route.config()
		if err != nil {
			return nil, err
		}
		app.configs = append(app.configs, config)
	}

	site := map[string]any{"title": cfg.Title}
	for k, v := range cfg.Params {
		site[k] = v
	}

	engine, err := render.NewEngine(render.Config{
		TemplatesDir: cfg.TemplatesDir,
		BaseURL:      cfg.BaseURL,
		Site:         site,
		Dev:          mode == core.ModeDev,
	})
	if err != nil {
		return nil, err
	}
	app.engine = engine

	if mode == core.ModeProd {
		app.manifest = loadManifest(cfg.OutputDir)
		engine.SetManifest(app.manifest)
	}

	if mode == core.ModeDev {
		app.reload = server.NewReload()
		app.watcher = startWatcher(cfg, func() {
			app.cache.Clear()
			app.reload.Notify()
		})
	}

	return app, nil
}

func loadManifest(outDir string) *core.Manifest {
	data, err := os.ReadFile(filepath.Join(outDir, build.ManifestFile))
	if err != nil {
		return nil
	}
	manifest, err := core.ParseManifest(data)
	if err != nil {
		return nil
	}
	return manifest
}

func startWatcher(cfg Config, onChange func()) *content.Watcher {
	var roots []string
	for _, dir := range []string{cfg.ContentDir, cfg.TemplatesDir} {
		if _, err := os.Stat(dir); err == nil {
			roots = append(roots, dir)
		}
	}
	if len(roots) == 0 {
		return nil
	}

	watcher, err := content.Watch(onChange, roots...)
	if err != nil {
		slog.Warn("dev watcher unavailable", "error", err)
		return nil
	}
	return watcher
}

// Wrap registers every route on the router and returns the site handler. In
// export mode it renders the whole site to the requested directory and exits,
// so a production build is just SKALD_EXPORT=dist ./yoursite.
func (a *App) Wrap(router Router) http.Handler {
	if a.mode == core.ModeExport {
		if _, err := a.export(context.Background(), core.ExportDir()); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if router == nil {
		panic("skald: nil router passed to Wrap; use app.Handler()")
	}

	isDev := a.mode == core.ModeDev

	for _, config := range a.configs {
		handler := server.NewPageHandler(config, a.engine, a.cache, a.manifest, a.cfg.OutputDir, isDev, a.reload)

		router.Handle(config.Pattern, handler)
		if config.Paginate != nil {
			router.Handle(pagePattern(config.Pattern), handler)
		}

		if config.Feed != nil {
			loader := config.Feed
			opts, err := loader(context.Background())
			if err != nil {
				slog.Warn("skipping feed route, loader failed", "pattern", config.Pattern, "error", err)
				continue
			}
			router.Handle(opts.Destination(), server.FeedHandler(func(req *http.Request) ([]byte, error) {
				fresh, err := loader(req.Context())
				if err != nil {
					return nil, err
				}
				return feed.Generate(fresh)
			}))
		}
	}

	if isDev {
		router.Handle(server.ReloadPath, a.reload)
	}

	assetDir := a.cfg.PublicDir
	if a.mode == core.ModeProd && a.manifest != nil {
		assetDir = filepath.Join(a.cfg.OutputDir, "assets")
	}

	return server.WrapAssets(router, server.AssetHandler(assetDir))
}

// pagePattern is the route for pages 2..N of a paginated collection.
func pagePattern(base string) string {
	base = core.NormalizePath(base)
	if base == "/" {
		return "/page/{n}"
	}
	return base + "/page/{n}"
}

// Handler wraps a fresh ServeMux.
func (a *App) Handler() http.Handler {
	return a.Wrap(http.NewServeMux())
}

// Export renders the whole site to outDir.
func (a *App) Export(ctx context.Context, outDir string) error {
	_, err := a.export(ctx, outDir)
	return err
}

func (a *App) export(ctx context.Context, outDir string) (*core.Manifest, error) {
	if outDir == "" {
		outDir = a.cfg.OutputDir
	}
	return build.Export(ctx, build.Input{
		OutDir:    outDir,
		PublicDir: a.cfg.PublicDir,
		Configs:   a.configs,
		Engine:    a.engine,
	})
}

// Stop releases the dev watcher.
func (a *App) Stop() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// IsDev reports whether the environment flag selects dev mode (SKALD_DEV=1).
func IsDev() bool {
	return core.IsDev()
}

// IsProd reports whether the site runs in production mode.
func IsProd() bool {
	return core.IsProd()
}
