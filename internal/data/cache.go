package data

import (
	"sync"
	"time"
)

type cacheEntry struct {
	points    []ForecastPoint
	expiresAt time.Time
}

// ResponseCache keeps forecast responses in memory for a fixed TTL. It is an
// explicit instance owned by whoever builds the client. A nil *ResponseCache
// is valid and caches nothing.
type ResponseCache struct {
	mu    sync.Mutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResponseCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a cached response if present and not expired. Expired entries
// are evicted on access.
func (c *ResponseCache) Get(key string) ([]ForecastPoint, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.store, key)
		return nil, false
	}
	return entry.points, true
}

func (c *ResponseCache) Set(key string, points []ForecastPoint) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{
		points:    points,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len is the number of stored entries, expired or not.
func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}
