package cache

import (
	"sync"
	"time"
)

// Cache is an in-process key-value store with per-entry TTL and hit/miss
// accounting. Expiry is lazy: entries are dropped when a read finds them
// stale. There is no size bound, so callers must keep key cardinality
// bounded (hash free-text context, never store it raw in a key).
//
// A cache operation never fails; anything unexpected behaves as a miss.
type Cache struct {
	name    string
	mu      sync.RWMutex
	entries map[string]entry

	hits   uint64
	misses uint64
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Metrics is a point-in-time snapshot of cache effectiveness.
type Metrics struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	Entries int     `json:"entries"`
}

// New builds a cache whose reads are counted under the given name in the
// cache_hits_total/cache_misses_total series.
func New(name string) *Cache {
	return &Cache{
		name:    name,
		entries: make(map[string]entry),
	}
}

// Get returns the stored value and whether it was present and fresh.
// Every call updates the hit/miss counters.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		cacheHitsTotal.WithLabelValues(c.name).Inc()
		return e.value, true
	}

	c.mu.Lock()
	if ok {
		// lazy expiry: only drop if nobody replaced the entry meanwhile
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.misses++
	c.mu.Unlock()
	cacheMissesTotal.WithLabelValues(c.name).Inc()

	return nil, false
}

// Set stores value under key for ttl. A non-positive ttl stores nothing,
// which keeps the "never fails" contract without retaining junk.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if key == "" || ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes a key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Metrics returns hit/miss counters and the current entry count.
func (c *Cache) Metrics() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}

	return Metrics{
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: rate,
		Entries: len(c.entries),
	}
}
