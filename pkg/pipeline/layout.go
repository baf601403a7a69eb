package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/observability"
)

// Layout returns positions for the current graph, computing them on a
// cache miss. A zero seed selects DefaultSeed.
func (r *Runner) Layout(ctx context.Context, seed uint64) (layout.Document, error) {
	doc, _, err := r.LayoutWithCacheInfo(ctx, seed)
	return doc, err
}

// LayoutWithCacheInfo is Layout that also reports whether the result came
// from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, seed uint64) (layout.Document, bool, error) {
	snap, err := r.snapshot()
	if err != nil {
		return layout.Document{}, false, err
	}
	return r.layoutFor(ctx, snap.Graph, seed)
}

func (r *Runner) layoutFor(ctx context.Context, g *graph.Graph, seed uint64) (layout.Document, bool, error) {
	if seed == 0 {
		seed = DefaultSeed
	}
	provider := layout.Name(r.Provider)
	key := r.Keyer.LayoutKey(g.Hash(), cache.LayoutKeyOpts{
		Provider: provider,
		Tuning:   layout.Fingerprint(r.Provider),
		Seed:     seed,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if doc, err := layout.UnmarshalDocument(data); err == nil {
			return doc, true, nil
		}
		// unreadable entry: recompute and overwrite
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		observability.Pipeline().OnLayoutStart(ctx, provider, g.NodeCount())
		start := time.Now()
		pts, err := r.Provider.Layout(ctx, g, seed)
		observability.Pipeline().OnLayoutComplete(ctx, provider, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		doc := layout.NewDocument(provider, seed, g.Hash(), pts)
		if data, err := doc.Marshal(); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "err", err)
			}
		}
		r.Logger.Debug("computed layout", "provider", provider, "seed", seed, "duration", time.Since(start))
		return doc, nil
	})
	if err != nil {
		return layout.Document{}, false, err
	}
	return v.(layout.Document), false, nil
}
