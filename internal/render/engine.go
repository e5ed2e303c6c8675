// Package render executes site templates. Templates are named by their path
// relative to the templates dir, so pages can reference layouts and partials
// as "layouts/base.html" or "partials/head.html".
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/skald-studio/skald/internal/core"
)

type Config struct {
	TemplatesDir string
	BaseURL      string
	Site         map[string]any
	Dev          bool
}

type Engine struct {
	cfg      Config
	mu       sync.RWMutex
	tmpl     *template.Template
	manifest *core.Manifest
}

func NewEngine(cfg Config) (*Engine, error) {
	e := &Engine{cfg: cfg}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// SetManifest wires the export manifest in so the asset func resolves
// fingerprinted URLs.
func (e *Engine) SetManifest(m *core.Manifest) {
	e.mu.Lock()
	e.manifest = m
	e.mu.Unlock()
}

func (e *Engine) load() error {
	root := template.New("").Funcs(e.funcs())

	err := filepath.WalkDir(e.cfg.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}

		rel, err := filepath.Rel(e.cfg.TemplatesDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if _, err := root.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load templates from %s: %w", e.cfg.TemplatesDir, err)
	}

	e.mu.Lock()
	e.tmpl = root
	e.mu.Unlock()
	return nil
}

// Render executes the named template with props. In dev the templates dir is
// re-read on every render so edits show up immediately.
func (e *Engine) Render(templatePath string, props map[string]any) (string, error) {
	if e.cfg.Dev {
		if err := e.load(); err != nil {
			return "", err
		}
	}

	e.mu.RLock()
	tmpl := e.tmpl
	e.mu.RUnlock()

	name := filepath.ToSlash(templatePath)
	if tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("template %q not found in %s", name, e.cfg.TemplatesDir)
	}

	if props == nil {
		props = map[string]any{}
	}
	if _, ok := props["site"]; !ok {
		props["site"] = e.siteProps()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, props); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) siteProps() map[string]any {
	site := map[string]any{
		"baseURL": e.cfg.BaseURL,
	}
	for k, v := range e.cfg.Site {
		site[k] = v
	}
	return site
}

func (e *Engine) funcs() template.FuncMap {
	return template.FuncMap{
		"asset": func(name string) string {
			e.mu.RLock()
			m := e.manifest
			e.mu.RUnlock()
			return m.AssetURL(name)
		},
		"absURL": func(p string) string {
			base, err := url.Parse(e.cfg.BaseURL)
			if err != nil || e.cfg.BaseURL == "" {
				return core.NormalizePath(p)
			}
			ref, err := url.Parse(p)
			if err != nil {
				return p
			}
			return base.ResolveReference(ref).String()
		},
		"datefmt": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}
}
