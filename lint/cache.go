package lint

import (
	"sync"

	"github.com/fwojciec/hastitle"
)

// Cache memoises detections by content hash. Detection is a pure function
// of the content, so pages with identical bytes share one verdict.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]hastitle.Detection
	hits    int
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]hastitle.Detection)}
}

// Detect returns the cached detection for doc, running d on a miss.
func (c *Cache) Detect(d hastitle.TitleDetector, doc *hastitle.Document) hastitle.Detection {
	key := doc.ContentHash
	if key == "" {
		key = hastitle.ComputeHash(doc.Content)
	}

	c.mu.Lock()
	if det, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return det
	}
	c.mu.Unlock()

	det := d.Detect(doc.Content)

	c.mu.Lock()
	c.entries[key] = det
	c.mu.Unlock()
	return det
}

// Hits returns how many lookups were served from the cache.
func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}
