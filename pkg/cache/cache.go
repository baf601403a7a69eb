// Package cache stores derived artifacts (layouts, rendered SVG) keyed by
// graph content.
//
// Everything cached here can be recomputed from the dataset, so a cache is
// always optional: [NullCache] disables it, [FileCache] keeps entries on
// disk for the CLI, and [RedisCache] shares them between server replicas.
// [Compressed] wraps any backend with zstd, and [Instrumented] reports hits
// and misses to the observability hooks.
//
// Keys come from a [Keyer], which hashes the graph content hash together
// with the options that affect the output, so a changed dataset never
// serves a stale layout.
package cache

import (
	"context"
	"errors"
	"time"
)

// Entry lifetimes. Keys embed the graph content hash, so these only bound
// disk and memory use.
const (
	TTLLayout = 7 * 24 * time.Hour
	TTLRender = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire. Implementations
// are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ErrNotClearable is returned by [Clear] for caches without a Clear method.
var ErrNotClearable = errors.New("cache cannot be cleared")

// Clear empties c if it supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return ErrNotClearable
}
