// Package doctor checks a site project before a build: config, templates,
// and every content file's frontmatter.
package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skald-studio/skald/internal/content"
	"github.com/skald-studio/skald/internal/project"
	"github.com/skald-studio/skald/internal/render"
)

type Check struct {
	Name     string
	OK       bool
	Errors   []string
	Warnings []string
}

type Report struct {
	Checks []Check
}

func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func Run(projectDir string) *Report {
	report := &Report{}

	cfg, check := checkConfig(projectDir)
	report.Checks = append(report.Checks, check)
	if cfg == nil {
		return report
	}

	report.Checks = append(report.Checks, checkTemplates(projectDir, cfg))
	report.Checks = append(report.Checks, checkContent(projectDir, cfg))
	return report
}

func checkConfig(projectDir string) (*project.Config, Check) {
	check := Check{Name: "config", OK: true}
	cfg, err := project.Load(projectDir)
	if err != nil {
		check.OK = false
		check.Errors = append(check.Errors, err.Error())
		return nil, check
	}
	if cfg.BaseURL == "" {
		check.Warnings = append(check.Warnings, "baseURL is empty; feeds and absURL will produce relative links")
	}
	return cfg, check
}

func checkTemplates(projectDir string, cfg *project.Config) Check {
	check := Check{Name: "templates", OK: true}

	_, err := render.NewEngine(render.Config{
		TemplatesDir: filepath.Join(projectDir, cfg.TemplatesDir),
	})
	if err != nil {
		check.OK = false
		check.Errors = append(check.Errors, err.Error())
	}
	return check
}

func checkContent(projectDir string, cfg *project.Config) Check {
	check := Check{Name: "content", OK: true}
	root := filepath.Join(projectDir, cfg.ContentDir)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		check.Warnings = append(check.Warnings, fmt.Sprintf("content dir %s does not exist", cfg.ContentDir))
		return check
	}

	for _, col := range cfg.Collections {
		source := filepath.Join(root, col.Source)
		entries, err := content.Load(os.DirFS(source), ".", content.Options{IncludeDrafts: true})
		if err != nil {
			check.OK = false
			check.Errors = append(check.Errors, fmt.Sprintf("%s: %v", col.Name, err))
			continue
		}
		for _, e := range entries {
			if e.Title == "" {
				check.Warnings = append(check.Warnings, fmt.Sprintf("%s/%s: missing title", col.Name, e.File))
			}
			if e.Date.IsZero() {
				check.Warnings = append(check.Warnings, fmt.Sprintf("%s/%s: missing date", col.Name, e.File))
			}
		}

		check.Warnings = append(check.Warnings, slugCollisions(col.Name, entries)...)
	}

	return check
}

func slugCollisions(name string, entries []content.Entry) []string {
	seen := map[string]string{}
	var warnings []string
	for _, e := range entries {
		if prev, ok := seen[e.Slug]; ok {
			warnings = append(warnings, fmt.Sprintf("%s: slug %q used by both %s and %s", name, e.Slug, prev, e.File))
			continue
		}
		seen[e.Slug] = e.File
	}
	return warnings
}

// Unreferenced lists templates no collection mentions, a common leftover
// after renames.
func Unreferenced(projectDir string, cfg *project.Config) []string {
	used := map[string]bool{}
	for _, col := range cfg.Collections {
		used[col.Template] = true
		if col.Index != nil {
			used[col.Index.Template] = true
		}
	}

	var unused []string
	root := filepath.Join(projectDir, cfg.TemplatesDir)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, "partials/") || strings.HasPrefix(name, "layouts/") {
			return nil
		}
		if !used[name] {
			unused = append(unused, name)
		}
		return nil
	})
	return unused
}
