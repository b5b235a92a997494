// Package cache holds the in-process, short-TTL price cache. It is the
// volatile tier of the resolution cache: process-local, never shared
// across process boundaries, distinct from the durable contract cache
// in the store.
package cache

import (
	"sync"
	"time"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/domain"
)

// DefaultPriceTTL bounds how long a price snapshot is served from memory.
const DefaultPriceTTL = 5 * time.Minute

type entry struct {
	price    *domain.TokenPrice
	storedAt time.Time
}

// PriceCache is a TTL map keyed by chain:address. Expiry is lazy on
// read; Sweep may be called periodically to drop expired entries that
// are never read again.
type PriceCache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	clock adapter.Clock
}

// NewPriceCache creates a price cache with the given TTL; a
// non-positive TTL falls back to DefaultPriceTTL.
func NewPriceCache(ttl time.Duration, clock adapter.Clock) *PriceCache {
	if ttl <= 0 {
		ttl = DefaultPriceTTL
	}
	return &PriceCache{
		items: make(map[string]entry),
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns the cached snapshot for a key if it has not expired.
func (c *PriceCache) Get(key domain.TokenKey) (*domain.TokenPrice, bool) {
	c.mu.RLock()
	e, ok := c.items[key.String()]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.clock.Since(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a newer write may have landed
		if current, ok := c.items[key.String()]; ok && current.storedAt.Equal(e.storedAt) {
			delete(c.items, key.String())
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.price, true
}

// Put stores a snapshot, superseding any previous one for the key.
func (c *PriceCache) Put(key domain.TokenKey, price *domain.TokenPrice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key.String()] = entry{price: price, storedAt: c.clock.Now()}
}

// Sweep removes all expired entries and returns how many were dropped.
func (c *PriceCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key, e := range c.items {
		if c.clock.Since(e.storedAt) >= c.ttl {
			delete(c.items, key)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live entries, expired or not.
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
