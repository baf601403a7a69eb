package cache

import (
	"context"

	"github.com/matzehuels/kinship/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string // "file", "redis" or "none"
	Dir      string // FileCache directory
	RedisURL string
	Prefix   string // Redis key prefix
	Compress bool
}

// Open builds the cache described by opts, wrapped in Instrumented and,
// when requested, Compressed. An empty backend means "none".
func Open(ctx context.Context, opts Options) (Cache, error) {
	var c Cache
	switch opts.Backend {
	case "", BackendNone:
		return NewInstrumented(NewNullCache()), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache requires a directory")
		}
		fc, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache %s", opts.Dir)
		}
		c = fc
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache requires a url")
		}
		rc, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		c = rc
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", opts.Backend)
	}
	if opts.Compress {
		cc, err := NewCompressed(c)
		if err != nil {
			_ = c.Close()
			return nil, errors.Wrap(errors.ErrCodeCache, err, "enable cache compression")
		}
		c = cc
	}
	return NewInstrumented(c), nil
}
