package cachemanager

import (
	"context"
	"time"
)

// ReadThrough fills a Cache from fn on a miss.
type ReadThrough[V any, I any] struct {
	cache Cache[V]
	fn    func(ctx context.Context, input I) (V, error)
	ttl   time.Duration
	skip  bool
}

// NewReadThrough wraps cache. With skip set, fn is always called and
// nothing is stored.
func NewReadThrough[V any, I any](
	cache Cache[V],
	fn func(ctx context.Context, input I) (V, error),
	ttl time.Duration,
	skip bool,
) *ReadThrough[V, I] {
	return &ReadThrough[V, I]{cache: cache, fn: fn, ttl: ttl, skip: skip}
}

// Get returns the cached value for key or computes it from input. Errors
// are not cached.
func (r *ReadThrough[V, I]) Get(ctx context.Context, key string, input I) (V, error) {
	if r.skip {
		return r.fn(ctx, input)
	}
	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Invalidate drops every cached value.
func (r *ReadThrough[V, I]) Invalidate(ctx context.Context) {
	r.cache.Flush(ctx)
}
