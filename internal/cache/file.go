// Package cache caches the four well-known bootstrap registry documents
// between runs.
//
// Two layers: a memory cache so repeated lookups inside one process skip
// disk entirely, and a file cache keyed by registry name with expiry
// judged from file modification time. Query response payloads are never
// cached here; only registry documents flow through this package.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long a cached registry document stays valid.
const DefaultTTL = 24 * time.Hour

// FileCache stores documents as files under a single directory, with
// expiry derived from each file's mtime. Last write wins; concurrent
// readers of an entry being rewritten see either version, both valid.
type FileCache struct {
	dir string
	ttl time.Duration
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating %s: %w", dir, err)
	}
	return &FileCache{dir: dir, ttl: ttl}, nil
}

// Get returns the cached document for key, or false if absent or
// expired. Expired entries are removed on the way out.
func (c *FileCache) Get(key string) ([]byte, bool) {
	path := filepath.Join(c.dir, key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		_ = os.Remove(path)
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a document under key, resetting its TTL.
func (c *FileCache) Set(key string, data []byte) error {
	path := filepath.Join(c.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cache: writing %s: %w", key, err)
	}
	return nil
}

// Clear removes every cached document.
func (c *FileCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("cache: reading %s: %w", c.dir, err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
				return fmt.Errorf("cache: removing %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}
