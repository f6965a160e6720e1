// Package cache is the terminal's explicit fetch cache: named keys, a
// per-call staleness window, and explicit invalidation on mutation. It
// replaces the implicit invalidate-on-mutation behavior of the browser
// app's data-fetching layer with inspectable data.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache holds fetched values per key. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	versions map[string]uint64
	now      func() time.Time
}

func New() *Cache {
	return &Cache{
		entries:  make(map[string]entry),
		versions: make(map[string]uint64),
		now:      time.Now,
	}
}

// Get returns the cached value for key if it is younger than ttl, otherwise
// calls loader and caches the result. Concurrent loads for one key are
// permitted and the last to resolve wins, except that a load begun before an
// Invalidate never writes back: its version token no longer matches. The
// loaded value is returned to the caller either way.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	if _, ok := c.versions[key]; !ok {
		c.versions[key] = 0 // register so invalidation can see the in-flight load
	}
	version := c.versions[key]
	c.mu.Unlock()

	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.versions[key] == version {
		c.entries[key] = entry{value: value, fetchedAt: c.now()}
	}
	c.mu.Unlock()
	return value, nil
}

// Peek returns the cached value regardless of age, without loading.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops the given keys and bumps their versions so in-flight
// loads for them cannot write back a pre-invalidation value.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.versions[key]++
	}
}

// InvalidatePrefix drops every key with the given prefix. Mutations use this
// to flush a whole resource, e.g. "ingredients/" after a stock adjustment.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.versions {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.versions[key]++
		}
	}
}
