// Package assets loads scene meshes and textures from an asset directory
// and uploads them to a device.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

var (
	// ErrInvalidMesh is returned when a mesh cannot be parsed or would
	// produce unusable device handles.
	ErrInvalidMesh = errors.New("invalid mesh")
	// ErrInvalidTexture is returned when a texture cannot be decoded or uploaded.
	ErrInvalidTexture = errors.New("invalid texture")
)

// Manager reads asset files from a filesystem and caches their bytes.
type Manager struct {
	fsys  fs.FS
	cache *Cache
}

// NewManager creates a manager reading from fsys, typically os.DirFS(assetDir).
func NewManager(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		cache: NewCache(),
	}
}

// Load reads a file, serving repeated reads from the cache.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := fs.ReadFile(m.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Exists reports whether path is present.
func (m *Manager) Exists(path string) bool {
	_, err := fs.Stat(m.fsys, path)
	return err == nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
