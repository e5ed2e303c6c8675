package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/render"
)

func newTestEngine(t *testing.T, templates map[string]string) *render.Engine {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	engine, err := render.NewEngine(render.Config{TemplatesDir: dir})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPageHandlerRendersLive(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"about.html": "<h1>About</h1>"})
	cache := render.NewCache(time.Minute)

	h := NewPageHandler(
		core.PageConfig{Pattern: "/about", TemplatePath: "about.html"},
		engine, cache, nil, "", false, nil,
	)

	rec := get(t, h, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>About</h1>") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestPageHandlerServesPrerendered(t *testing.T) {
	outDir := t.TempDir()
	file := filepath.Join(outDir, "about", "index.html")
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("<h1>Built</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest := core.NewManifest()
	manifest.Pages["/about"] = "about/index.html"

	engine := newTestEngine(t, map[string]string{"about.html": "live"})
	h := NewPageHandler(
		core.PageConfig{Pattern: "/about", TemplatePath: "about.html"},
		engine, render.NewCache(time.Minute), manifest, outDir, false, nil,
	)

	rec := get(t, h, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Built</h1>") {
		t.Errorf("expected prerendered output, got %q", rec.Body.String())
	}
}

func TestPageHandlerPrerenderedMiss404(t *testing.T) {
	manifest := core.NewManifest()

	engine := newTestEngine(t, map[string]string{"about.html": "live"})
	h := NewPageHandler(
		core.PageConfig{Pattern: "/about", TemplatePath: "about.html"},
		engine, render.NewCache(time.Minute), manifest, t.TempDir(), false, nil,
	)

	if rec := get(t, h, "/about"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPageHandlerStaticPaths(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"post.html": "<h1>{{.title}}</h1><p>{{.params.slug}}</p>",
	})

	config := core.PageConfig{
		Pattern:      "/posts/{slug}",
		TemplatePath: "post.html",
		StaticPaths: func(ctx context.Context) ([]core.StaticPath, error) {
			return []core.StaticPath{
				{Params: map[string]string{"slug": "hello"}, Props: map[string]any{"title": "Hello"}},
			}, nil
		},
	}
	h := NewPageHandler(config, engine, render.NewCache(time.Minute), nil, "", true, nil)

	rec := get(t, h, "/posts/hello")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Hello</h1>") {
		t.Errorf("props not applied: %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<p>hello</p>") {
		t.Errorf("params not applied: %q", rec.Body.String())
	}

	if rec := get(t, h, "/posts/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug status = %d, want 404", rec.Code)
	}
}

func TestPageHandlerPaginated(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"list.html": "page {{.page.CurrentPage}}",
	})

	items := make([]any, 12)
	config := core.PageConfig{
		Pattern:      "/blog",
		TemplatePath: "list.html",
		Paginate: &core.PaginateConfig{
			Size:   5,
			Loader: func(ctx context.Context) ([]any, error) { return items, nil },
		},
	}
	h := NewPageHandler(config, engine, render.NewCache(time.Minute), nil, "", false, nil)

	rec := get(t, h, "/blog/page/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "page 2") {
		t.Errorf("body = %q", rec.Body.String())
	}

	if rec := get(t, h, "/blog/page/9"); rec.Code != http.StatusNotFound {
		t.Errorf("out-of-range page status = %d, want 404", rec.Code)
	}
}

func TestPageHandlerDevInjectsReloadScript(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"index.html": "<html><body>hi</body></html>",
	})
	h := NewPageHandler(
		core.PageConfig{Pattern: "/", TemplatePath: "index.html"},
		engine, render.NewCache(time.Minute), nil, "", true, NewReload(),
	)

	rec := get(t, h, "/")
	if !strings.Contains(rec.Body.String(), "__skald_reload") {
		t.Errorf("reload script missing from dev response: %q", rec.Body.String())
	}
}

func TestPageHandlerCachesInProd(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"index.html": "cached"})
	cache := render.NewCache(time.Minute)
	h := NewPageHandler(
		core.PageConfig{Pattern: "/", TemplatePath: "index.html"},
		engine, cache, nil, "", false, nil,
	)

	get(t, h, "/")

	key, err := render.CacheKey("/", map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); !ok {
		t.Error("expected rendered page in cache after prod request")
	}
}

func TestPageHandlerRenderErrorPage(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"index.html": "ok"})
	config := core.PageConfig{
		Pattern:      "/",
		TemplatePath: "index.html",
		Props: func(req *http.Request) (map[string]any, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := NewPageHandler(config, engine, render.NewCache(time.Minute), nil, "", true, nil)

	rec := get(t, h, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deadline exceeded") {
		t.Errorf("error page missing message: %q", rec.Body.String())
	}
}
