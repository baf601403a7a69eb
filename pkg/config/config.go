// Package config loads kinship settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, KINSHIP_*
// environment variables, then command-line flags (applied by the CLI).
//
// A minimal kinship.toml:
//
//	[dataset]
//	location = "complete_graph_data.json"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/render/nodelink"
)

// FileName is the config file searched for when none is given.
const FileName = "kinship.toml"

// Defaults.
const (
	DefaultDataset    = "complete_graph_data.json"
	DefaultProvider   = "spring"
	DefaultIterations = 50
	DefaultAddr       = ":8080"
)

// Config is the full set of settings.
type Config struct {
	Dataset DatasetConfig `toml:"dataset"`
	Layout  LayoutConfig  `toml:"layout"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// DatasetConfig locates the dataset. Location is anything source.Open
// accepts: a file path, an http(s) URL, or a database URI.
type DatasetConfig struct {
	Location      string `toml:"location"`
	Neo4jUser     string `toml:"neo4j_user,omitempty"`
	Neo4jPassword string `toml:"neo4j_password,omitempty"`
}

// LayoutConfig selects the layout provider.
type LayoutConfig struct {
	Provider   string `toml:"provider"` // "spring" or "circle"
	Seed       uint64 `toml:"seed"`
	Iterations int    `toml:"iterations"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Engine string `toml:"engine"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // "file", "redis" or "none"
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty"`
	Compress bool   `toml:"compress"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Watch bool   `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset: DatasetConfig{Location: DefaultDataset},
		Layout: LayoutConfig{
			Provider:   DefaultProvider,
			Seed:       layout.DefaultSeed,
			Iterations: DefaultIterations,
		},
		Render: RenderConfig{Engine: nodelink.EngineNeato},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     DefaultCacheDir(),
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Validate checks values that cannot be caught by decoding.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Dataset.Location) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "dataset location is empty")
	}
	if _, err := c.LayoutProvider(); err != nil {
		return err
	}
	if c.Layout.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout iterations must not be negative, got %d", c.Layout.Iterations)
	}
	if _, err := nodelink.ParseEngine(c.Render.Engine); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render engine")
	}
	switch c.Cache.Backend {
	case cache.BackendNone, "":
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis cache needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// LayoutProvider returns the configured layout provider.
func (c Config) LayoutProvider() (layout.Provider, error) {
	switch strings.ToLower(c.Layout.Provider) {
	case "", "spring":
		s := layout.NewSpring()
		if c.Layout.Iterations > 0 {
			s.Updates = c.Layout.Iterations
		}
		return s, nil
	case "circle":
		return layout.Circle{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown layout provider %q (want spring or circle)", c.Layout.Provider)
}

// CacheOptions converts the cache section for cache.Open.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
		Compress: c.Cache.Compress,
	}
}

// DefaultCacheDir returns $XDG_CACHE_HOME/kinship, falling back to the
// user cache directory.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "kinship")
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "kinship")
	}
	return filepath.Join(os.TempDir(), "kinship-cache")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/kinship, falling back to the
// user config directory.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kinship")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "kinship")
	}
	return ""
}
