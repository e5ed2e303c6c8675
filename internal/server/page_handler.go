// Package server serves a site over HTTP: live rendering in dev, prerendered
// output in prod, assets and feeds alongside.
package server

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"path/filepath"

	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/render"
)

type PageHandler struct {
	config   core.PageConfig
	engine   *render.Engine
	cache    *render.Cache
	manifest *core.Manifest
	outDir   string
	isDev    bool
	reload   *Reload
}

func NewPageHandler(
	config core.PageConfig,
	engine *render.Engine,
	cache *render.Cache,
	manifest *core.Manifest,
	outDir string,
	isDev bool,
	reload *Reload,
) http.Handler {
	return &PageHandler{
		config:   config,
		engine:   engine,
		cache:    cache,
		manifest: manifest,
		outDir:   outDir,
		isDev:    isDev,
		reload:   reload,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	reqPath := core.NormalizePath(req.URL.Path)

	decision := core.DecidePageAction(core.PageRequest{
		IsDev:       h.isDev,
		RequestPath: reqPath,
		HasManifest: h.manifest != nil,
		Prerendered: h.config.Prerendered(),
	}, h.manifest)

	switch decision.Action {
	case core.ActionServePrerendered:
		h.servePrerendered(w, req, decision.HTMLPath)

	case core.ActionNotFound:
		http.NotFound(w, req)

	case core.ActionRender:
		h.render(w, req, reqPath)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, req *http.Request, reqPath string) {
	props, found, err := h.resolveProps(req, reqPath)
	if err != nil {
		h.serveError(w, err)
		return
	}
	if !found {
		http.NotFound(w, req)
		return
	}

	key, err := render.CacheKey(reqPath, props)
	if err != nil {
		h.serveError(w, err)
		return
	}

	if page, ok := h.cache.Get(key); ok {
		h.serveHTML(w, page)
		return
	}

	page, err := h.engine.Render(h.config.TemplatePath, props)
	if err != nil {
		h.serveError(w, err)
		return
	}

	if h.isDev {
		page = InjectReloadScript(page)
	} else {
		h.cache.Set(key, page)
	}

	h.serveHTML(w, page)
}

// resolveProps assembles template props for a live render: route params,
// static path props, pagination page, per-request props.
func (h *PageHandler) resolveProps(req *http.Request, reqPath string) (map[string]any, bool, error) {
	props := map[string]any{}

	if h.config.Paginate != nil {
		return h.resolvePaginated(req, reqPath)
	}

	params, ok := core.MatchPattern(h.config.Pattern, reqPath)
	if !ok {
		return nil, false, nil
	}
	if len(params) > 0 {
		props["params"] = params
	}

	if h.config.StaticPaths != nil {
		entries, err := h.config.StaticPaths(req.Context())
		if err != nil {
			return nil, false, fmt.Errorf("failed to load static paths: %w", err)
		}

		found := false
		for _, entry := range entries {
			path, err := core.ExpandPattern(h.config.Pattern, entry.Params)
			if err != nil {
				return nil, false, err
			}
			if path == reqPath {
				for k, v := range entry.Props {
					props[k] = v
				}
				props["params"] = entry.Params
				found = true
				break
			}
		}
		if !found {
			return nil, false, nil
		}
	}

	if h.config.Props != nil {
		loaded, err := h.config.Props(req)
		if err != nil {
			return nil, false, err
		}
		for k, v := range loaded {
			props[k] = v
		}
	}

	return props, true, nil
}

func (h *PageHandler) resolvePaginated(req *http.Request, reqPath string) (map[string]any, bool, error) {
	items, err := h.config.Paginate.Loader(req.Context())
	if err != nil {
		return nil, false, fmt.Errorf("failed to load items: %w", err)
	}

	for _, page := range core.Paginate(items, h.config.Pattern, h.config.Paginate.Size) {
		if page.URL.Current == reqPath {
			return map[string]any{"page": page}, true, nil
		}
	}
	return nil, false, nil
}

func (h *PageHandler) servePrerendered(w http.ResponseWriter, req *http.Request, relFile string) {
	fullPath := filepath.Join(h.outDir, filepath.FromSlash(relFile))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, req, fullPath)
}

func (h *PageHandler) serveHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func (h *PageHandler) serveError(w http.ResponseWriter, err error) {
	data := core.ErrorData{
		Message: err.Error(),
		IsDev:   h.isDev,
	}

	var buf bytes.Buffer
	if tmplErr := core.ErrorTemplate.Execute(&buf, data); tmplErr != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}
