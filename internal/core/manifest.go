package core

import (
	"encoding/json"
)

// Manifest records what a static export produced: URL path -> HTML file for
// every rendered page, feed destinations, and fingerprinted asset names.
// The prod server uses it to serve prerendered output; templates use the
// asset map to resolve fingerprinted URLs.
type Manifest struct {
	Version int               `json:"version"`
	Pages   map[string]string `json:"pages"`
	Feeds   map[string]string `json:"feeds,omitempty"`
	Assets  map[string]string `json:"assets,omitempty"`
}

func NewManifest() *Manifest {
	return &Manifest{
		Version: 1,
		Pages:   map[string]string{},
		Feeds:   map[string]string{},
		Assets:  map[string]string{},
	}
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// PageFile looks up the exported HTML file for a URL path.
func (m *Manifest) PageFile(urlPath string) (string, bool) {
	if m == nil || m.Pages == nil {
		return "", false
	}
	file, ok := m.Pages[NormalizePath(urlPath)]
	return file, ok
}

// AssetURL resolves a logical asset name to its fingerprinted URL, falling
// back to the unfingerprinted dev path.
func (m *Manifest) AssetURL(name string) string {
	if m != nil && m.Assets != nil {
		if url, ok := m.Assets[name]; ok {
			return url
		}
	}
	return "/assets/" + name
}
