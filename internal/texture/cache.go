package texture

import (
	"image"
	"path/filepath"
	"sync"
)

// Resolver resolves a texture name to a decoded RGBA image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache resolving names relative to a
// base directory (normally the model file's directory).
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheEntry
	baseDir string
}

type cacheEntry struct {
	img *image.NRGBA // nil if the load attempt failed
}

// NewCache creates a texture cache rooted at baseDir.
func NewCache(baseDir string) *Cache {
	return &Cache{
		items:   make(map[string]*cacheEntry),
		baseDir: baseDir,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	if texName == "" {
		return nil
	}
	path := texName
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.baseDir, texName)
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, _ := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}
