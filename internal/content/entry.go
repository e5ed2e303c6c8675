package content

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"
)

// Entry is one loaded content file: typed frontmatter fields, the whole
// frontmatter in Meta, and both the raw markdown and its rendered HTML.
type Entry struct {
	Title       string
	Description string
	Author      string
	Date        time.Time
	Draft       bool
	Tags        []string
	Meta        map[string]any
	Slug        string
	URL         string
	File        string
	Raw         string
	HTML        template.HTML
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func entryFromMeta(meta map[string]any, file string) (Entry, error) {
	meta = sanitizeMeta(meta)

	e := Entry{
		Meta: meta,
		File: file,
	}

	if v, ok := meta["title"].(string); ok {
		e.Title = v
	}
	if v, ok := meta["description"].(string); ok {
		e.Description = v
	}
	if v, ok := meta["author"].(string); ok {
		e.Author = v
	}
	if v, ok := meta["draft"].(bool); ok {
		e.Draft = v
	}

	if v, ok := meta["date"]; ok {
		date, err := parseDate(v)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", file, err)
		}
		e.Date = date
	}

	e.Tags = stringList(meta["tags"])

	if v, ok := meta["slug"].(string); ok && v != "" {
		e.Slug = v
	} else {
		e.Slug = slugify(file)
	}

	return e, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", d)
	default:
		return time.Time{}, fmt.Errorf("date has unsupported type %T", v)
	}
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

// slugify derives a URL slug from a content file path.
func slugify(file string) string {
	base := file
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, "_", "-")
	return base
}

// SortEntries orders by date descending; equal dates tie-break by slug so
// builds are deterministic.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].Slug < entries[j].Slug
	})
}

// FilterDrafts drops draft entries unless they are included (dev mode).
func FilterDrafts(entries []Entry, includeDrafts bool) []Entry {
	if includeDrafts {
		return entries
	}
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Draft {
			kept = append(kept, e)
		}
	}
	return kept
}

// sanitizeMeta normalizes nested map[interface{}]interface{} values the YAML
// parser produces into map[string]any.
func sanitizeMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return sanitizeMeta(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[fmt.Sprint(k)] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = sanitizeValue(v[i])
		}
		return out
	default:
		return v
	}
}
