package content

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders markdown bodies to HTML. YAML frontmatter is handled by
// the meta extension during conversion; TOML and JSON frontmatter are
// stripped by the loader before the body reaches Convert.
type Converter struct {
	md goldmark.Markdown
}

func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				meta.Meta,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(false),
					),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Convert renders a body with no frontmatter.
func (c *Converter) Convert(body []byte) ([]byte, error) {
	out, _, err := c.convert(body)
	return out, err
}

// ConvertWithMeta renders a full file whose YAML frontmatter the meta
// extension strips and parses.
func (c *Converter) ConvertWithMeta(src []byte) ([]byte, map[string]any, error) {
	return c.convert(src)
}

func (c *Converter) convert(src []byte) ([]byte, map[string]any, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := c.md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return nil, nil, fmt.Errorf("markdown conversion failed: %w", err)
	}
	return buf.Bytes(), meta.Get(ctx), nil
}
