// Package project loads a skald.yaml site definition and assembles an App
// from it, so config-only sites need no custom Go code.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/skald-studio/skald/internal/core"
)

const ConfigFile = "skald.yaml"

type Config struct {
	Title        string         `yaml:"title"`
	BaseURL      string         `yaml:"baseURL"`
	Params       map[string]any `yaml:"params"`
	ContentDir   string         `yaml:"contentDir"`
	TemplatesDir string         `yaml:"templatesDir"`
	PublicDir    string         `yaml:"publicDir"`
	OutputDir    string         `yaml:"outputDir"`
	PageSize     int            `yaml:"pageSize"`
	Collections  []Collection   `yaml:"collections"`
}

type Collection struct {
	Name     string       `yaml:"name"`
	Source   string       `yaml:"source"`
	Route    string       `yaml:"route"`
	Template string       `yaml:"template"`
	Index    *IndexConfig `yaml:"index"`
	Feed     *FeedConfig  `yaml:"feed"`
}

type IndexConfig struct {
	Route    string `yaml:"route"`
	Template string `yaml:"template"`
	Paginate int    `yaml:"paginate"`
}

type FeedConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Dest        string `yaml:"dest"`
	Stylesheet  string `yaml:"stylesheet"`
}

// Load reads and validates <dir>/skald.yaml.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
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

	for i := range c.Collections {
		col := &c.Collections[i]
		if col.Source == "" {
			col.Source = col.Name
		}
		if col.Index != nil && col.Index.Paginate <= 0 {
			col.Index.Paginate = c.PageSize
		}
		if col.Feed != nil && col.Feed.Title == "" {
			col.Feed.Title = c.Title
		}
	}
}

func (c *Config) validate() error {
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}

	for _, col := range c.Collections {
		if col.Name == "" {
			return fmt.Errorf("collection without a name")
		}
		if col.Route == "" || col.Template == "" {
			return fmt.Errorf("collection %s needs route and template", col.Name)
		}
		if err := core.ValidateRoutePath(col.Route); err != nil {
			return fmt.Errorf("collection %s: %w", col.Name, err)
		}
		if !slices.Contains(core.PatternParams(col.Route), "slug") {
			return fmt.Errorf("collection %s: route %s needs a {slug} placeholder", col.Name, col.Route)
		}
		if col.Index != nil {
			if col.Index.Route == "" || col.Index.Template == "" {
				return fmt.Errorf("collection %s: index needs route and template", col.Name)
			}
			if err := core.ValidateRoutePath(col.Index.Route); err != nil {
				return fmt.Errorf("collection %s index: %w", col.Name, err)
			}
			if core.HasParams(col.Index.Route) {
				return fmt.Errorf("collection %s: index route cannot have placeholders", col.Name)
			}
		}
		if col.Feed != nil && c.BaseURL == "" {
			return fmt.Errorf("collection %s: feeds require baseURL", col.Name)
		}
	}

	return nil
}
