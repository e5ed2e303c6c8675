package core

import (
	"strings"
	"testing"
)

func TestHashContentStable(t *testing.T) {
	a := HashContent([]byte("hello"))
	b := HashContent([]byte("hello"))
	if a != b {
		t.Errorf("hash not stable: %q vs %q", a, b)
	}
	if a == HashContent([]byte("world")) {
		t.Error("different content produced identical hash")
	}
}

func TestFingerprintName(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want string
	}{
		{"app.css", "abc", "app.abc.css"},
		{"js/main.js", "123", "js/main.123.js"},
		{"LICENSE", "ff", "LICENSE.ff"},
		{".env", "ff", ".env.ff"},
	}

	for _, tt := range tests {
		if got := FingerprintName(tt.name, tt.hash); got != tt.want {
			t.Errorf("FingerprintName(%q, %q) = %q, want %q", tt.name, tt.hash, got, tt.want)
		}
	}
}

func TestFingerprintRoundTrip(t *testing.T) {
	hash := HashContent([]byte("body { color: red }"))
	got := FingerprintName("style.css", hash)
	if !strings.HasPrefix(got, "style.") || !strings.HasSuffix(got, ".css") {
		t.Errorf("unexpected fingerprinted name %q", got)
	}
}
