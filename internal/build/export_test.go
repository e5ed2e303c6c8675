package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skald-studio/skald/internal/core"
	"github.com/skald-studio/skald/internal/feed"
	"github.com/skald-studio/skald/internal/render"
)

func testEngine(t *testing.T, templates map[string]string) *render.Engine {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	engine, err := render.NewEngine(render.Config{TemplatesDir: dir, BaseURL: "https://example.com"})
	require.NoError(t, err)
	return engine
}

func readOut(t *testing.T, outDir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(rel)))
	require.NoError(t, err, rel)
	return string(data)
}

func TestExport(t *testing.T) {
	outDir := t.TempDir()

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "style.css"), []byte("body{}"), 0o644))

	engine := testEngine(t, map[string]string{
		"index.html": `home {{asset "style.css"}}`,
		"post.html":  `post {{.params.slug}}`,
	})

	configs := []core.PageConfig{
		{Pattern: "/", TemplatePath: "index.html"},
		{
			Pattern:      "/posts/{slug}",
			TemplatePath: "post.html",
			StaticPaths: func(ctx context.Context) ([]core.StaticPath, error) {
				return []core.StaticPath{
					{Params: map[string]string{"slug": "first"}},
					{Params: map[string]string{"slug": "second"}},
				}, nil
			},
			Feed: func(ctx context.Context) (feed.Options, error) {
				return feed.Options{
					Title: "Posts",
					Site:  "https://example.com",
					Items: []feed.Item{{Title: "First", Link: "/posts/first"}},
				}, nil
			},
		},
	}

	manifest, err := Export(context.Background(), Input{
		OutDir:    outDir,
		PublicDir: publicDir,
		Configs:   configs,
		Engine:    engine,
		Quiet:     true,
	})
	require.NoError(t, err)

	// pages on disk and in the manifest
	assert.Equal(t, "index.html", manifest.Pages["/"])
	assert.Equal(t, "posts/first/index.html", manifest.Pages["/posts/first"])
	assert.Contains(t, readOut(t, outDir, "posts/second/index.html"), "post second")

	// assets are fingerprinted and visible to templates while rendering
	assetURL := manifest.Assets["style.css"]
	assert.NotEqual(t, "/assets/style.css", assetURL)
	assert.Contains(t, readOut(t, outDir, "index.html"), assetURL)
	assert.FileExists(t, filepath.Join(outDir, filepath.FromSlash(assetURL[1:])))

	// feed written at its destination
	assert.Equal(t, "rss.xml", manifest.Feeds["/rss.xml"])
	assert.Contains(t, readOut(t, outDir, "rss.xml"), "<title>Posts</title>")

	// manifest file itself round-trips
	data, err := os.ReadFile(filepath.Join(outDir, ManifestFile))
	require.NoError(t, err)
	parsed, err := core.ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, manifest.Pages, parsed.Pages)
}

func TestExportPaginated(t *testing.T) {
	outDir := t.TempDir()

	engine := testEngine(t, map[string]string{
		"list.html": `page {{.page.CurrentPage}} of {{.page.LastPage}}`,
	})

	items := make([]any, 12)
	for i := range items {
		items[i] = i
	}

	configs := []core.PageConfig{{
		Pattern:      "/blog",
		TemplatePath: "list.html",
		Paginate: &core.PaginateConfig{
			Size: 5,
			Loader: func(ctx context.Context) ([]any, error) {
				return items, nil
			},
		},
	}}

	manifest, err := Export(context.Background(), Input{
		OutDir:  outDir,
		Configs: configs,
		Engine:  engine,
		Quiet:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "blog/index.html", manifest.Pages["/blog"])
	assert.Equal(t, "blog/page/2/index.html", manifest.Pages["/blog/page/2"])
	assert.Equal(t, "blog/page/3/index.html", manifest.Pages["/blog/page/3"])
	assert.Contains(t, readOut(t, outDir, "blog/page/3/index.html"), "page 3 of 3")
}

func TestExportLeavesLoaderPropsAlone(t *testing.T) {
	engine := testEngine(t, map[string]string{"post.html": `{{.params.slug}}`})

	shared := map[string]any{"layout": "wide"}
	_, err := Export(context.Background(), Input{
		OutDir: t.TempDir(),
		Configs: []core.PageConfig{{
			Pattern:      "/posts/{slug}",
			TemplatePath: "post.html",
			StaticPaths: func(ctx context.Context) ([]core.StaticPath, error) {
				return []core.StaticPath{
					{Params: map[string]string{"slug": "a"}, Props: shared},
					{Params: map[string]string{"slug": "b"}, Props: shared},
				}, nil
			},
		}},
		Engine: engine,
		Quiet:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"layout": "wide"}, shared, "loader map was mutated during export")
}

func TestExportParamRouteNeedsLoader(t *testing.T) {
	engine := testEngine(t, map[string]string{"post.html": "x"})

	_, err := Export(context.Background(), Input{
		OutDir:  t.TempDir(),
		Configs: []core.PageConfig{{Pattern: "/posts/{slug}", TemplatePath: "post.html"}},
		Engine:  engine,
		Quiet:   true,
	})
	assert.ErrorIs(t, err, core.ErrLoaderRequired)
}

func TestExportDuplicatePaths(t *testing.T) {
	engine := testEngine(t, map[string]string{"a.html": "a", "b.html": "b"})

	_, err := Export(context.Background(), Input{
		OutDir: t.TempDir(),
		Configs: []core.PageConfig{
			{Pattern: "/about", TemplatePath: "a.html"},
			{
				Pattern:      "/{slug}",
				TemplatePath: "b.html",
				StaticPaths: func(ctx context.Context) ([]core.StaticPath, error) {
					return []core.StaticPath{{Params: map[string]string{"slug": "about"}}}, nil
				},
			},
		},
		Engine: engine,
		Quiet:  true,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateRoute)
}

func TestExportMissingTemplatePath(t *testing.T) {
	engine := testEngine(t, map[string]string{"a.html": "a"})

	_, err := Export(context.Background(), Input{
		OutDir:  t.TempDir(),
		Configs: []core.PageConfig{{Pattern: "/"}},
		Engine:  engine,
		Quiet:   true,
	})
	assert.ErrorIs(t, err, core.ErrTemplateRequired)
}
