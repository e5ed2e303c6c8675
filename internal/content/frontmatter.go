package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatNone = ""
)

var ErrNoFrontmatter = errors.New("content file has no frontmatter")

// DetectFormat sniffs the frontmatter delimiter: YAML "---", TOML "+++",
// or a JSON object covering the whole file.
func DetectFormat(raw []byte) string {
	s := string(raw)
	switch {
	case strings.HasPrefix(s, "---"):
		return FormatYAML
	case strings.HasPrefix(s, "+++"):
		return FormatTOML
	case strings.HasPrefix(strings.TrimSpace(s), "{"):
		return FormatJSON
	default:
		return FormatNone
	}
}

// SplitFrontmatter parses TOML or JSON frontmatter and returns the metadata
// with the remaining markdown body. YAML is not handled here; the markdown
// converter's meta extension strips and parses it during conversion.
func SplitFrontmatter(raw []byte, format string) (map[string]any, []byte, error) {
	switch format {
	case FormatTOML:
		parts := strings.SplitN(string(raw), "+++", 3)
		if len(parts) != 3 {
			return nil, nil, fmt.Errorf("unterminated +++ frontmatter block")
		}
		var meta map[string]any
		if err := toml.Unmarshal([]byte(parts[1]), &meta); err != nil {
			return nil, nil, fmt.Errorf("invalid toml frontmatter: %w", err)
		}
		return meta, []byte(strings.TrimSpace(parts[2])), nil

	case FormatJSON:
		trimmed := bytes.TrimSpace(raw)
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		var meta map[string]any
		if err := dec.Decode(&meta); err != nil {
			return nil, nil, fmt.Errorf("invalid json frontmatter: %w", err)
		}
		rest := trimmed[dec.InputOffset():]
		return meta, bytes.TrimSpace(rest), nil

	default:
		return nil, nil, ErrNoFrontmatter
	}
}
