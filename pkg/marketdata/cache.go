package marketdata

import (
	"sync"
	"time"
)

type cacheEntry struct {
	v   any
	exp time.Time
}

// TTLCache is a small in-memory cache with per-entry expiry. A zero TTL means
// the entry never expires. Expired entries are evicted lazily on read.
type TTLCache struct {
	mu sync.RWMutex
	m  map[string]cacheEntry
}

// NewTTLCache creates an empty cache.
func NewTTLCache() *TTLCache {
	return &TTLCache{m: make(map[string]cacheEntry)}
}

// Get returns the cached value for key, or false if the key is absent or
// expired.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()

		return nil, false
	}

	return e.v, true
}

// Set stores a value under key. ttl <= 0 keeps the entry until overwritten.
func (c *TTLCache) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.m[key] = cacheEntry{v: v, exp: exp}
	c.mu.Unlock()
}

// Delete removes a key if present.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

// Len reports the number of entries, including any not yet evicted.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.m)
}
