package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/observability"
	"github.com/matzehuels/kinship/pkg/path"
	"github.com/matzehuels/kinship/pkg/source"
	"github.com/matzehuels/kinship/pkg/stats"
)

// Runner loads a dataset from a Source and serves queries against the
// current snapshot, caching layouts and renders.
//
// A Runner is safe for concurrent use. Queries read the snapshot pointer
// once, so a Reload in progress never changes the graph under them.
type Runner struct {
	Source   source.Source
	Cache    cache.Cache
	Keyer    cache.Keyer
	Provider layout.Provider
	Logger   *log.Logger

	// BuildOptions are passed to graph.Build on every reload.
	BuildOptions []graph.Option

	current atomic.Pointer[Snapshot]
	flight  singleflight.Group
}

// NewRunner creates a runner for src.
// If cache is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(src source.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source:   src,
		Cache:    c,
		Keyer:    keyer,
		Provider: layout.NewSpring(),
		Logger:   logger,
	}
}

// =============================================================================
// Snapshot lifecycle
// =============================================================================

// Reload loads the dataset, builds a graph and swaps it in. On failure the
// previous snapshot stays current and the error is returned.
func (r *Runner) Reload(ctx context.Context) (*Snapshot, error) {
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no dataset source configured")
	}
	name := r.Source.Name()

	observability.Pipeline().OnLoadStart(ctx, name)
	start := time.Now()
	ds, err := r.Source.Load(ctx)
	members := 0
	if ds != nil {
		members = len(ds.Members)
	}
	observability.Pipeline().OnLoadComplete(ctx, name, members, time.Since(start), err)
	if err != nil {
		r.Logger.Error("load failed", "source", name, "err", err)
		return nil, err
	}

	buildStart := time.Now()
	g, warnings, err := graph.Build(ds, r.BuildOptions...)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, len(warnings), time.Since(buildStart), err)
		r.Logger.Error("build failed", "source", name, "err", err)
		return nil, err
	}
	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), len(warnings), time.Since(buildStart), nil)

	for _, w := range warnings {
		r.Logger.Warn(w.String())
	}

	snap := &Snapshot{
		ID:       uuid.New(),
		Source:   name,
		Dataset:  ds,
		Graph:    g,
		Warnings: warnings,
		Stats:    stats.Summarize(g),
		BuiltAt:  time.Now(),
	}
	r.current.Store(snap)

	r.Logger.Info("loaded dataset",
		"source", name,
		"members", g.NodeCount(),
		"relationships", g.EdgeCount(),
		"warnings", len(warnings),
		"duration", time.Since(start))
	return snap, nil
}

// Current returns the current snapshot, or nil before the first successful
// Reload.
func (r *Runner) Current() *Snapshot {
	return r.current.Load()
}

func (r *Runner) snapshot() (*Snapshot, error) {
	snap := r.current.Load()
	if snap == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no dataset loaded")
	}
	return snap, nil
}

// Watch reloads whenever the file at filePath changes, until ctx is done.
// Failed reloads are logged and the previous snapshot is kept.
func (r *Runner) Watch(ctx context.Context, filePath string, debounce time.Duration) error {
	r.Logger.Info("watching dataset", "path", filePath)
	return source.Watch(ctx, filePath, debounce, func() {
		r.Logger.Info("dataset changed, reloading", "path", filePath)
		_, _ = r.Reload(ctx)
	})
}

// =============================================================================
// Queries
// =============================================================================

// Path finds the lightest directed path between two members.
func (r *Runner) Path(ctx context.Context, from, to string) (path.Result, error) {
	snap, err := r.snapshot()
	if err != nil {
		return path.Result{}, err
	}
	return r.pathIn(ctx, snap, from, to)
}

func (r *Runner) pathIn(ctx context.Context, snap *Snapshot, from, to string) (path.Result, error) {
	start := time.Now()
	res, err := path.ShortestPath(snap.Graph, from, to)
	outcome := res.Outcome.String()
	if err != nil {
		outcome = "invalid"
	}
	observability.Query().OnPathQuery(ctx, from, to, outcome, time.Since(start), err)
	if err != nil {
		return path.Result{}, err
	}
	r.Logger.Debug("path query", "from", from, "to", to, "outcome", outcome, "hops", res.Hops())
	return res, nil
}

// Reach returns the lightest total weight from a member to every member it
// can reach, including itself at zero.
func (r *Runner) Reach(ctx context.Context, from string) (map[string]float64, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	return path.DistancesFrom(snap.Graph, from)
}

// Summary returns statistics for the current snapshot.
func (r *Runner) Summary(ctx context.Context) (Summary, error) {
	snap, err := r.snapshot()
	if err != nil {
		return Summary{}, err
	}
	return snap.Summary(), nil
}

// Members returns the member table for the current snapshot.
func (r *Runner) Members(ctx context.Context) ([]stats.MemberRow, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Members(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
