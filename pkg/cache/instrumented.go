package cache

import (
	"context"
	"time"

	"github.com/matzehuels/kinship/pkg/observability"
)

// Instrumented reports hits, misses and writes of an inner Cache to
// observability.Cache(). The hook keyType is KeyType(key).
type Instrumented struct {
	inner Cache
}

// NewInstrumented wraps inner.
func NewInstrumented(inner Cache) *Instrumented {
	return &Instrumented{inner: inner}
}

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, KeyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, KeyType(key))
	}
	return data, ok, nil
}

func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *Instrumented) Clear(ctx context.Context) error {
	return Clear(ctx, c.inner)
}

func (c *Instrumented) Close() error {
	return c.inner.Close()
}

var (
	_ Cache   = (*Instrumented)(nil)
	_ Clearer = (*Instrumented)(nil)
)
