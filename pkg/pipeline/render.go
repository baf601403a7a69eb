package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/observability"
	"github.com/matzehuels/kinship/pkg/path"
	"github.com/matzehuels/kinship/pkg/render"
	"github.com/matzehuels/kinship/pkg/render/nodelink"
)

// Render draws the current graph as a node-link diagram. When From and To
// are set and connected, the path is highlighted; when they are not
// connected the endpoints are still enlarged.
func (r *Runner) Render(ctx context.Context, opts RenderOptions) ([]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, opts)
	return out, err
}

// RenderWithCacheInfo is Render that also reports whether the result came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, opts RenderOptions) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	snap, err := r.snapshot()
	if err != nil {
		return nil, false, err
	}
	g := snap.Graph

	var highlight *path.Result
	if opts.Highlighted() {
		res, err := r.pathIn(ctx, snap, opts.From, opts.To)
		if err != nil {
			return nil, false, err
		}
		if res.Found() {
			highlight = &res
		}
	}

	provider := layout.Name(r.Provider)
	key := r.Keyer.RenderKey(g.Hash(), cache.RenderKeyOpts{
		Format:   string(opts.Format),
		Engine:   opts.Engine,
		Source:   opts.From,
		Target:   opts.To,
		Provider: provider,
		Tuning:   layout.Fingerprint(r.Provider),
		Seed:     opts.Seed,
	})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		doc, _, err := r.layoutFor(ctx, g, opts.Seed)
		if err != nil {
			return nil, err
		}
		dot := nodelink.ToDOT(g, nodelink.Options{
			Positions: doc.Positions(),
			Highlight: highlight,
			Source:    opts.From,
			Target:    opts.To,
		})

		observability.Pipeline().OnRenderStart(ctx, string(opts.Format))
		start := time.Now()
		data, err := renderDOT(ctx, dot, opts)
		observability.Pipeline().OnRenderComplete(ctx, string(opts.Format), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		}
		r.Logger.Debug("rendered graph", "format", opts.Format, "bytes", len(data), "duration", time.Since(start))
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

func renderDOT(ctx context.Context, dot string, opts RenderOptions) ([]byte, error) {
	switch opts.Format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, dot, opts.Engine)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, dot, opts.Engine)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Engine, DefaultPNGScale)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported output format %q", opts.Format)
}
