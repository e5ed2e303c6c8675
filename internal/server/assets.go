package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/skald-studio/skald/internal/core"
)

const assetPrefix = "/assets/"

// AssetHandler serves files under /assets/. In dev that is the public dir
// as-is; in prod it is the exported assets dir, where names carry
// fingerprints.
func AssetHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rel := strings.TrimPrefix(req.URL.Path, assetPrefix)
		if rel == "" || strings.Contains(rel, "..") {
			http.NotFound(w, req)
			return
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(rel))
		if info, err := os.Stat(fullPath); err != nil || info.IsDir() {
			http.NotFound(w, req)
			return
		}

		w.Header().Set("Content-Type", core.GetContentType(fullPath))
		http.ServeFile(w, req, fullPath)
	})
}

// WrapAssets routes /assets/ requests to the asset handler and everything
// else to the app router.
func WrapAssets(router http.Handler, assets http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, assetPrefix) {
			assets.ServeHTTP(w, req)
			return
		}
		router.ServeHTTP(w, req)
	})
}

// FeedHandler serves a generated feed live.
func FeedHandler(generate func(*http.Request) ([]byte, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		xml, err := generate(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write(xml)
	})
}
