package cache

import (
	"sync"
	"time"

	"StockLens/pkg/clock"
)

type entry struct {
	v   any
	exp time.Time
}

// TTLCache is an in-process key/value store with per-entry lifetime.
// Expired entries are dropped lazily on read and are never returned.
type TTLCache struct {
	mu    sync.RWMutex
	m     map[string]entry
	clock clock.Clock
}

// NewTTLCache builds a cache reading time from c. A nil clock uses wall time.
func NewTTLCache(c clock.Clock) *TTLCache {
	if c == nil {
		c = clock.Real{}
	}
	return &TTLCache{m: make(map[string]entry), clock: c}
}

// Get returns the live value for key.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && !c.clock.Now().Before(e.exp) {
		c.mu.Lock()
		// re-check: a concurrent Put may have replaced the entry
		if cur, ok := c.m[key]; ok && cur.exp.Equal(e.exp) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

// Put stores value under key. A non-positive ttl keeps the entry until cleared.
func (c *TTLCache) Put(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = c.clock.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = entry{v: v, exp: exp}
	c.mu.Unlock()
}

// Clear removes key. Clearing a missing key is a no-op.
func (c *TTLCache) Clear(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

// Len reports stored entries, including ones that expired but were not read yet.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
