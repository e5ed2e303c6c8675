// Package build renders a site to static files: every concrete route,
// attached feeds, and fingerprinted copies of the public dir, recorded in a
// manifest the prod server and templates consume.
package build

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/skald-studio/skald/internal/cli"
	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/feed"
	"github.com/skald-studio/skald/internal/render"
)

const ManifestFile = "manifest.json"

type Input struct {
	OutDir    string
	PublicDir string
	Configs   []core.PageConfig
	Engine    *render.Engine
	// Quiet suppresses step output (tests).
	Quiet bool
}

type resolvedPage struct {
	path     string
	template string
	props    map[string]any
}

// Export runs the full static build. Any failing route aborts the build with
// an error naming it.
func Export(ctx context.Context, in Input) (*core.Manifest, error) {
	if !in.Quiet {
		cli.PrintHeader("Skald Export")
	}

	manifest := core.NewManifest()

	if err := os.MkdirAll(in.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	if in.PublicDir != "" {
		if err := exportAssets(in, manifest); err != nil {
			return nil, err
		}
	}

	// Assets first: page templates resolve fingerprinted URLs through the
	// manifest while rendering.
	in.Engine.SetManifest(manifest)

	var spinner *cli.Spinner
	if !in.Quiet {
		spinner = cli.NewSpinner("Resolving routes...")
		spinner.Start()
	}
	pages, err := resolvePages(ctx, in.Configs)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}

	if !in.Quiet {
		cli.PrintStep(cli.EmojiZap, "Rendering %d page(s)...", len(pages))
	}

	for _, page := range pages {
		html, err := in.Engine.Render(page.template, page.props)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", page.path, err)
		}

		relFile := core.HTMLFilePath(page.path)
		outFile := filepath.Join(in.OutDir, filepath.FromSlash(relFile))
		if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create dir for %s: %w", page.path, err)
		}
		if err := os.WriteFile(outFile, []byte(html), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", page.path, err)
		}

		manifest.Pages[page.path] = relFile
		if !in.Quiet {
			cli.PrintFile(page.path)
		}
		slog.Debug("rendered page", "path", page.path, "file", relFile)
	}

	if err := exportFeeds(ctx, in, manifest); err != nil {
		return nil, err
	}

	data, err := manifest.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(in.OutDir, ManifestFile), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	if !in.Quiet {
		cli.PrintDone(fmt.Sprintf("Exported %d page(s) to %s", len(pages), in.OutDir))
	}
	return manifest, nil
}

// resolvePages expands every route into concrete paths: plain routes as-is,
// placeholder routes through their static paths loader, paginated routes one
// page per chunk.
func resolvePages(ctx context.Context, configs []core.PageConfig) ([]resolvedPage, error) {
	var pages []resolvedPage
	seen := map[string]string{}

	add := func(pattern, path, tmpl string, props map[string]any) error {
		path = core.NormalizePath(path)
		if prev, dup := seen[path]; dup {
			return fmt.Errorf("%w: %s claimed by both %s and %s", core.ErrDuplicateRoute, path, prev, pattern)
		}
		seen[path] = pattern
		pages = append(pages, resolvedPage{path: path, template: tmpl, props: props})
		return nil
	}

	for _, config := range configs {
		if config.TemplatePath == "" {
			return nil, fmt.Errorf("%w: %s", core.ErrTemplateRequired, config.Pattern)
		}

		switch {
		case config.Paginate != nil:
			items, err := config.Paginate.Loader(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to load items for %s: %w", config.Pattern, err)
			}
			for _, page := range core.Paginate(items, config.Pattern, config.Paginate.Size) {
				props := map[string]any{"page": page}
				if err := add(config.Pattern, page.URL.Current, config.TemplatePath, props); err != nil {
					return nil, err
				}
			}

		case config.StaticPaths != nil:
			entries, err := config.StaticPaths(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to load static paths for %s: %w", config.Pattern, err)
			}
			for _, entry := range entries {
				path, err := core.ExpandPattern(config.Pattern, entry.Params)
				if err != nil {
					return nil, err
				}
				// Copied: loaders may hand out shared maps, and rendering
				// adds keys of its own.
				props := make(map[string]any, len(entry.Props)+1)
				for k, v := range entry.Props {
					props[k] = v
				}
				props["params"] = entry.Params
				if err := add(config.Pattern, path, config.TemplatePath, props); err != nil {
					return nil, err
				}
			}

		default:
			if core.HasParams(config.Pattern) {
				return nil, fmt.Errorf("%w: %s", core.ErrLoaderRequired, config.Pattern)
			}
			if err := add(config.Pattern, config.Pattern, config.TemplatePath, map[string]any{}); err != nil {
				return nil, err
			}
		}
	}

	// Deterministic output order regardless of route declaration order.
	sort.Slice(pages, func(i, j int) bool { return pages[i].path < pages[j].path })
	return pages, nil
}

func exportFeeds(ctx context.Context, in Input, manifest *core.Manifest) error {
	for _, config := range in.Configs {
		if config.Feed == nil {
			continue
		}

		opts, err := config.Feed(ctx)
		if err != nil {
			return fmt.Errorf("failed to load feed for %s: %w", config.Pattern, err)
		}

		xml, err := feed.Generate(opts)
		if err != nil {
			return fmt.Errorf("failed to generate feed for %s: %w", config.Pattern, err)
		}

		dest := opts.Destination()
		relFile := filepath.FromSlash(dest[1:])
		outFile := filepath.Join(in.OutDir, relFile)
		if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
			return fmt.Errorf("failed to create dir for feed %s: %w", dest, err)
		}
		if err := os.WriteFile(outFile, xml, 0644); err != nil {
			return fmt.Errorf("failed to write feed %s: %w", dest, err)
		}

		manifest.Feeds[dest] = dest[1:]
		if !in.Quiet {
			cli.PrintFile(dest)
		}
	}
	return nil
}

// exportAssets copies the public dir into <out>/assets with content-hash
// fingerprints and records logical name -> URL in the manifest.
func exportAssets(in Input, manifest *core.Manifest) error {
	if _, err := os.Stat(in.PublicDir); os.IsNotExist(err) {
		return nil
	}

	if !in.Quiet {
		cli.PrintStep(cli.EmojiPackage, "Copying assets from %s...", in.PublicDir)
	}

	return filepath.WalkDir(in.PublicDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", path, err)
		}

		rel, err := filepath.Rel(in.PublicDir, path)
		if err != nil {
			return err
		}
		logical := filepath.ToSlash(rel)

		fingerprinted := core.FingerprintName(logical, core.HashContent(data))
		outFile := filepath.Join(in.OutDir, "assets", filepath.FromSlash(fingerprinted))
		if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
			return fmt.Errorf("failed to create asset dir: %w", err)
		}
		if err := os.WriteFile(outFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", logical, err)
		}

		manifest.Assets[logical] = "/assets/" + fingerprinted
		if !in.Quiet {
			cli.PrintFile(logical + " -> " + fingerprinted)
		}
		return nil
	})
}
