package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFromMeta(t *testing.T) {
	meta := map[string]any{
		"title":       "Hello",
		"description": "A greeting",
		"author":      "Ada",
		"date":        "2024-03-01",
		"draft":       true,
		"tags":        []any{"go", "web"},
		"extra":       map[any]any{"color": "red"},
	}

	e, err := entryFromMeta(meta, "posts/hello-world.md")
	require.NoError(t, err)

	assert.Equal(t, "Hello", e.Title)
	assert.Equal(t, "A greeting", e.Description)
	assert.Equal(t, "Ada", e.Author)
	assert.True(t, e.Draft)
	assert.Equal(t, []string{"go", "web"}, e.Tags)
	assert.Equal(t, "hello-world", e.Slug)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.Date)
	// nested map[any]any values are normalized for html/template
	assert.Equal(t, map[string]any{"color": "red"}, e.Meta["extra"])
}

func TestEntryFromMetaExplicitSlug(t *testing.T) {
	e, err := entryFromMeta(map[string]any{"slug": "custom"}, "posts/2024-file.md")
	require.NoError(t, err)
	assert.Equal(t, "custom", e.Slug)
}

func TestEntryFromMetaBadDate(t *testing.T) {
	_, err := entryFromMeta(map[string]any{"date": "yesterday"}, "a.md")
	assert.Error(t, err)

	_, err = entryFromMeta(map[string]any{"date": 42}, "a.md")
	assert.Error(t, err)
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01 10:30:00", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.want), "parseDate(%q) = %v", tt.in, got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"posts/Hello World.md", "hello-world"},
		{"my_post.markdown", "my-post"},
		{"nested/dir/Post.md", "post"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in))
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Slug: "b", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "newest", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	SortEntries(entries)

	assert.Equal(t, "newest", entries[0].Slug)
	assert.Equal(t, "a", entries[1].Slug)
	assert.Equal(t, "b", entries[2].Slug)
}

func TestFilterDrafts(t *testing.T) {
	entries := []Entry{{Slug: "a"}, {Slug: "b", Draft: true}}

	kept := FilterDrafts(entries, false)
	require.Len(t, kept, 1)
	assert.Equal(t, "a", kept[0].Slug)

	assert.Len(t, FilterDrafts(entries, true), 2)
}
