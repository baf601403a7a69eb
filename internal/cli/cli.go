// Package cli implements the kinship command-line interface.
//
// Every command loads the configuration (see package config), opens the
// dataset source, builds the graph once and then answers from it:
//
//   - path: lightest route between two members
//   - reach: distances from one member to everyone it can reach
//   - stats / members: chapter statistics and the member table
//   - layout / render: positions and node-link diagrams
//   - pick: interactive member picker followed by a path query
//   - serve: the HTTP API, optionally reloading on dataset changes
//   - export: copy the dataset into a SQLite database
//   - cache: manage the layout and render cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/buildinfo"
	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/config"
	"github.com/matzehuels/kinship/pkg/httputil"
	"github.com/matzehuels/kinship/pkg/pipeline"
	"github.com/matzehuels/kinship/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "kinship"

	// fallbackTTL bounds how long a downloaded dataset is kept for offline use.
	fallbackTTL = 30 * 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	dataset    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Kinship explores a chapter's family tree",
		Long:         `Kinship loads a chapter's members and their big-little and classmate relationships, finds the lightest path between any two members, and draws the family tree as a node-link diagram.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: ./kinship.toml, then the user config dir)")
	flags.StringVarP(&c.dataset, "dataset", "d", "", "dataset file, URL or database URI (overrides config)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the layout and render cache")

	root.AddCommand(c.pathCommand())
	root.AddCommand(c.reachCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.membersCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, file, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if file != "" {
		c.Logger.Debug("loaded config", "file", file)
	}
	if c.dataset != "" {
		cfg.Dataset.Location = c.dataset
	}
	if c.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
	return cfg, nil
}

// openSource resolves the configured dataset location.
func (c *CLI) openSource(cfg config.Config) (source.Source, error) {
	src, err := source.Open(cfg.Dataset.Location)
	if err != nil {
		return nil, err
	}
	switch s := src.(type) {
	case *source.Neo4j:
		s.Username = cfg.Dataset.Neo4jUser
		s.Password = cfg.Dataset.Neo4jPassword
	case *source.HTTP:
		s.Logger = c.Logger
		if cfg.Cache.Backend != cache.BackendNone && cfg.Cache.Dir != "" {
			fb, err := httputil.NewCache(filepath.Join(cfg.Cache.Dir, "http"), fallbackTTL)
			if err != nil {
				c.Logger.Warn("offline fallback disabled", "err", err)
			} else {
				s.Fallback = fb
			}
		}
	}
	return src, nil
}

// newRunner builds a runner from cfg without loading the dataset.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	src, err := c.openSource(cfg)
	if err != nil {
		return nil, err
	}
	provider, err := cfg.LayoutProvider()
	if err != nil {
		return nil, err
	}
	cc, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", cfg.Cache.Backend, "err", err)
		cc = cache.NewNullCache()
	}
	runner := pipeline.NewRunner(src, cc, nil, c.Logger)
	runner.Provider = provider
	return runner, nil
}

// openRunner loads the config, builds a runner and loads the dataset.
// The caller closes the runner.
func (c *CLI) openRunner(ctx context.Context) (*pipeline.Runner, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return nil, cfg, err
	}
	sw := startStopwatch(c.Logger)
	snap, err := runner.Reload(ctx)
	if err != nil {
		runner.Close()
		return nil, cfg, err
	}
	sw.done("Loaded dataset", "members", snap.Graph.NodeCount(), "relationships", snap.Graph.EdgeCount())
	return runner, cfg, nil
}
