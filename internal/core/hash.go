package core

import (
	"fmt"
	"hash/fnv"
	"strings"
)

func HashContent(content []byte) string {
	h := fnv.New64a()
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum64())
}

// FingerprintName inserts a content hash before the extension:
// "app.css" -> "app.1a2b3c.css". Extensionless names get the hash appended.
func FingerprintName(name string, hash string) string {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name + "." + hash
	}
	return name[:dot] + "." + hash + name[dot:]
}
