package data

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a bounded, time-expiring key→value store. Each API client owns
// its own instance, scoped to the process; the simulation engines never
// touch it. A nil *Cache is a no-op.
type Cache[V any] struct {
	mu    sync.RWMutex
	store map[string]cacheEntry[V]
	ttl   time.Duration
	max   int
}

// NewCache creates a cache holding at most max entries, each valid for ttl.
func NewCache[V any](ttl time.Duration, max int) *Cache[V] {
	return &Cache[V]{
		store: make(map[string]cacheEntry[V]),
		ttl:   ttl,
		max:   max,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || time.Now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting expired entries first and then the
// entry closest to expiry if the cache is still full.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
		}
	}
	if len(c.store) >= c.max {
		var oldest string
		var oldestAt time.Time
		for k, e := range c.store {
			if oldest == "" || e.expiresAt.Before(oldestAt) {
				oldest, oldestAt = k, e.expiresAt
			}
		}
		delete(c.store, oldest)
	}

	c.store[key] = cacheEntry[V]{value: value, expiresAt: now.Add(c.ttl)}
}
