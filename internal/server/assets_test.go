package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssetHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := AssetHandler(dir)

	rec := get(t, h, "/assets/style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/css") {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("body = %q", rec.Body.String())
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "/assets/missing.css"},
		{"bare prefix", "/assets/"},
		{"traversal", "/assets/../secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := get(t, h, tt.path); rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
		})
	}
}

func TestWrapAssets(t *testing.T) {
	router := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("router"))
	})
	assets := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("assets"))
	})

	h := WrapAssets(router, assets)

	if body := get(t, h, "/assets/app.js").Body.String(); body != "assets" {
		t.Errorf("asset request hit %q", body)
	}
	if body := get(t, h, "/about").Body.String(); body != "router" {
		t.Errorf("page request hit %q", body)
	}
}

func TestFeedHandler(t *testing.T) {
	h := FeedHandler(func(req *http.Request) ([]byte, error) {
		return []byte("<rss/>"), nil
	})

	rec := get(t, h, "/rss.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/rss+xml") {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.String() != "<rss/>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestFeedHandlerError(t *testing.T) {
	h := FeedHandler(func(req *http.Request) ([]byte, error) {
		return nil, os.ErrNotExist
	})

	if rec := get(t, h, "/rss.xml"); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestInjectReloadScript(t *testing.T) {
	withBody := InjectReloadScript("<html><body>hi</body></html>")
	if !strings.Contains(withBody, "__skald_reload") {
		t.Error("script not injected")
	}
	if !strings.HasSuffix(withBody, "</body></html>") {
		t.Errorf("script not placed before </body>: %q", withBody)
	}

	// idempotent
	if again := InjectReloadScript(withBody); strings.Count(again, "__skald_reload") != strings.Count(withBody, "__skald_reload") {
		t.Error("script injected twice")
	}

	// fragment without a body tag still gets the script
	fragment := InjectReloadScript("<p>bare</p>")
	if !strings.Contains(fragment, "__skald_reload") {
		t.Error("script missing from fragment")
	}
}

func TestReloadNotify(t *testing.T) {
	r := NewReload()
	ch := r.subscribe()
	defer r.unsubscribe(ch)

	r.Notify()

	select {
	case <-ch:
	default:
		t.Error("expected notification on subscribed channel")
	}
}

func TestReloadSSEHandshake(t *testing.T) {
	r := NewReload()

	req := httptest.NewRequest(http.MethodGet, ReloadPath, nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "event: ready") {
		t.Errorf("missing ready event: %q", rec.Body.String())
	}
}
