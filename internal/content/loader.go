// Package content loads markdown collections: frontmatter, rendered HTML,
// slugs and URLs, ordered newest first.
package content

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/skald-studio/skald/internal/core"
)

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
}

type Options struct {
	// Glob filters file base names (path.Match); empty means every markdown
	// extension.
	Glob string
	// RoutePattern binds entries to a route; its {slug} placeholder is filled
	// with each entry's slug to produce Entry.URL.
	RoutePattern string
	// IncludeDrafts keeps draft entries (dev mode).
	IncludeDrafts bool
}

// Load walks dir inside fsys and returns the collection sorted by date
// descending. A missing or empty directory is an empty collection, not an
// error; a file without frontmatter is an error naming the file.
func Load(fsys fs.FS, dir string, opts Options) ([]Entry, error) {
	conv := NewConverter()

	var entries []Entry
	root := path.Clean(dir)
	if root == "" {
		root = "."
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !matches(p, opts.Glob) {
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		entry, err := parseEntry(conv, raw, rel)
		if err != nil {
			return err
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries = FilterDrafts(entries, opts.IncludeDrafts)
	SortEntries(entries)

	if opts.RoutePattern != "" {
		for i := range entries {
			url, err := entryURL(opts.RoutePattern, entries[i].Slug)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", entries[i].File, err)
			}
			entries[i].URL = url
		}
	}

	return entries, nil
}

func parseEntry(conv *Converter, raw []byte, file string) (Entry, error) {
	format := DetectFormat(raw)

	var (
		meta map[string]any
		body []byte
		html []byte
		err  error
	)

	switch format {
	case FormatYAML:
		html, meta, err = conv.ConvertWithMeta(raw)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", file, err)
		}
		if len(meta) == 0 {
			return Entry{}, fmt.Errorf("%s: %w", file, ErrNoFrontmatter)
		}
		body = yamlBody(raw)

	case FormatTOML, FormatJSON:
		meta, body, err = SplitFrontmatter(raw, format)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", file, err)
		}
		html, err = conv.Convert(body)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", file, err)
		}

	default:
		return Entry{}, fmt.Errorf("%s: %w", file, ErrNoFrontmatter)
	}

	entry, err := entryFromMeta(meta, file)
	if err != nil {
		return Entry{}, err
	}
	entry.Raw = string(body)
	entry.HTML = template.HTML(html)
	return entry, nil
}

func entryURL(pattern, slug string) (string, error) {
	if !core.HasParams(pattern) {
		return core.NormalizePath(path.Join(pattern, slug)), nil
	}
	return core.ExpandPattern(pattern, map[string]string{"slug": slug})
}

// yamlBody strips the frontmatter block the meta extension already consumed,
// so Entry.Raw holds only the markdown body.
func yamlBody(raw []byte) []byte {
	parts := strings.SplitN(string(raw), "---", 3)
	if len(parts) == 3 {
		return []byte(strings.TrimSpace(parts[2]))
	}
	return raw
}

func matches(p, glob string) bool {
	base := path.Base(p)
	if glob != "" {
		ok, err := path.Match(glob, base)
		return err == nil && ok
	}
	return markdownExts[strings.ToLower(path.Ext(base))]
}
