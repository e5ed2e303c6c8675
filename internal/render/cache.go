package render

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

type cacheEntry struct {
	html      string
	expiresAt time.Time
}

// Cache keeps rendered HTML for a short TTL so repeated requests don't
// re-execute templates. The content watcher clears it on change.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}

	return entry.html, true
}

func (c *Cache) Set(key string, html string) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		html:      html,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// CacheKey derives a key from the request path and the props that produced
// the page.
func CacheKey(path string, props map[string]any) (string, error) {
	if props == nil {
		return path + ":nil", nil
	}
	data, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("failed to marshal props for cache key: %w", err)
	}
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("%s:%x", path, h.Sum64()), nil
}
