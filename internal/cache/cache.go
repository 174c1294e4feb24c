// Package cache provides the in-process TTL store for extracted transfer
// payloads. The key space is bounded by the supported leagues, so there is
// no size-based eviction; expired entries are dropped lazily on lookup.
package cache

import (
	"sync"
	"time"

	"github.com/Gizmito78/todobiwenger/internal/model"
)

type entry struct {
	created time.Time
	ttl     time.Duration
	payload []model.Transfer
}

// Cache is a mutex-guarded key→payload store with per-entry TTL.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty Cache using the wall clock.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// WithClock sets the time source, for deterministic expiry tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the payload stored under key, if present and within its TTL.
// An expired entry is removed and reported as absent.
func (c *Cache) Get(key string) ([]model.Transfer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.created) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Put stores payload under key with the given TTL, replacing any previous
// entry.
func (c *Cache) Put(key string, payload []model.Transfer, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		created: c.now(),
		ttl:     ttl,
		payload: payload,
	}
}

// Len reports the number of stored entries, including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
