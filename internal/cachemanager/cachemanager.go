// Package cachemanager provides a typed in-memory TTL cache for read
// results that are expensive to recompute, such as diff text and the
// repository status index.
package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/interpretive-systems/triptych/internal/log"
)

// Cache is a typed view over a go-cache store. Loads issued from
// asynchronous commands and flushes from the event loop may run
// concurrently; the underlying store is safe for that.
type Cache[V any] struct {
	c *gocache.Cache
}

// New creates a cache whose entries expire after ttl and are swept every
// cleanup interval. A ttl of 0 keeps entries until flushed.
func New[V any](ttl, cleanup time.Duration) *Cache[V] {
	return &Cache[V]{c: gocache.New(ttl, cleanup)}
}

// Get retrieves the value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	value, found := c.c.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error("cached value has wrong type", "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key with the cache's default expiration.
func (c *Cache[V]) Set(key string, value V) {
	c.c.SetDefault(key, value)
}

// GetOrLoad returns the cached value, or loads, stores, and returns a
// fresh one. Concurrent loads of the same key may both run; the later
// result stays, so loaders must be idempotent.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Flush drops every entry.
func (c *Cache[V]) Flush() {
	c.c.Flush()
}

// Len reports how many entries the cache holds, expired ones included
// until the next sweep.
func (c *Cache[V]) Len() int {
	return c.c.ItemCount()
}
