package spatial

import "sync"

// Cache holds lazily built indexes keyed by mesh identity. Keeping the
// association in a separate map avoids back-references from mesh
// objects to their acceleration data.
type Cache struct {
	mu      sync.Mutex
	indexes map[string]*Index
}

// NewCache creates an empty index cache
func NewCache() *Cache {
	return &Cache{indexes: make(map[string]*Index)}
}

// Get returns the index for a mesh, building it on first use. The
// build runs under the cache lock, so at most one build happens per
// mesh identity and concurrent callers wait for it.
func (c *Cache) Get(id string, build func() *Index) *Index {
	c.mu.Lock()
	if idx, ok := c.indexes[id]; ok {
		c.mu.Unlock()
		return idx
	}
	idx := build()
	c.indexes[id] = idx
	c.mu.Unlock()
	return idx
}

// Invalidate drops the cached index for a mesh, forcing a rebuild on
// next use. Called when the mesh geometry is replaced.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.indexes, id)
	c.mu.Unlock()
}

// Len returns the number of cached indexes
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.indexes)
}
