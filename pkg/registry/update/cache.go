// Package update implements the periodic update-checking and auto-update
// services layered on top of pkg/registry's manager.
package update

import (
	"sync"
	"time"
)

// cacheEntry holds one scope's last check result alongside when it was
// computed, so repeated checkUpdates calls within the TTL can be served
// without re-hitting every source (spec.md §4.7).
type cacheEntry struct {
	computedAt time.Time
	candidates []Candidate
}

// Candidate mirrors registry.UpdateCandidate without importing the registry
// package, so this package stays usable against any manager shape that
// implements Checker.
type Candidate struct {
	BundleID       string
	CurrentVersion string
	LatestVersion  string
	Changelog      string
	DownloadURL    string
}

// Cache memoizes checkUpdates results per scope key for a fixed TTL.
type Cache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache builds a Cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: map[string]cacheEntry{}}
}

// Get returns the cached candidates for key if they are still within TTL.
func (c *Cache) Get(key string) ([]Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Since(e.computedAt) >= c.ttl {
		return nil, false
	}
	return e.candidates, true
}

// Set stores candidates for key, stamped with the current time.
func (c *Cache) Set(key string, candidates []Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{computedAt: time.Now(), candidates: candidates}
}

// Invalidate drops key's cached entry, forcing the next check to bypass the
// cache (e.g. right after an install/uninstall changes what's on disk).
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
