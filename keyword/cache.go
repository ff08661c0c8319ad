package keyword

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// Cache memoizes candidate lists by exact input text.
type Cache interface {
	Get(key string) ([]string, bool)
	Add(key string, value []string)
}

// LRUCache is a fixed-capacity, least-recently-used Cache safe for concurrent
// use. Values are copied in and out so callers can never alter a cached entry.
type LRUCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func NewLRUCache(maxEntries int) *LRUCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &LRUCache{cache: lru.New(maxEntries)}
}

func (c *LRUCache) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return cloneStrings(v.([]string)), true
}

func (c *LRUCache) Add(key string, value []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(key, cloneStrings(value))
}

func (c *LRUCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Len()
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
