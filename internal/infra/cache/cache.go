// Package cache provides a typed in-memory TTL cache backed by go-cache.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// InMemory is a thread-safe in-memory cache with TTL.
// Expired entries are purged by go-cache's janitor every 2*ttl.
type InMemory[T any] struct {
	c *gocache.Cache
}

// New creates a new in-memory cache with the given TTL.
func New[T any](ttl time.Duration) *InMemory[T] {
	return &InMemory[T]{c: gocache.New(ttl, 2*ttl)}
}

// Get retrieves a value from the cache. Returns false if not found or expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Set stores a value in the cache with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.c.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *InMemory[T]) Delete(key string) {
	c.c.Delete(key)
}

// Len returns the number of cached items, including expired ones not yet purged.
func (c *InMemory[T]) Len() int {
	return c.c.ItemCount()
}
