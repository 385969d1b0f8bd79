// Package cachemanager provides the typed in-memory caches used for
// rendered transcript entries.
package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/promptline/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Cache is a typed key/value cache with per-item expiry.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
	Len() int
}

// InMemory is a Cache backed by go-cache.
type InMemory[V any] struct {
	name  string
	cache *gocache.Cache
}

var _ Cache[string] = (*InMemory[string])(nil)

// NewInMemory creates a cache. name only appears in log lines.
func NewInMemory[V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemory[V] {
	return &InMemory[V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value for key. A value of the wrong type counts as a miss.
func (c *InMemory[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type in cache", "cache", c.name)
		return zero, false
	}
	return v, true
}

// Set stores value. A ttl of 0 uses the default expiration.
func (c *InMemory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes keys.
func (c *InMemory[V]) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush removes everything.
func (c *InMemory[V]) Flush(context.Context) {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", c.name)
}

// Len counts items, including expired ones not yet cleaned up.
func (c *InMemory[V]) Len() int {
	return c.cache.ItemCount()
}
