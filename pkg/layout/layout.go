package layout

import (
	"context"
	"math"
	"slices"

	"github.com/matzehuels/kinship/pkg/graph"
)

// DefaultSeed matches the seed the dashboard has always used.
const DefaultSeed uint64 = 42

// Point is a position in the plane.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Positions maps member ids to coordinates.
type Positions map[string]Point

// Covers reports whether p has exactly one entry per member of g and no
// others.
func (p Positions) Covers(g *graph.Graph) bool {
	if len(p) != g.NodeCount() {
		return false
	}
	for _, id := range g.IDs() {
		if _, ok := p[id]; !ok {
			return false
		}
	}
	return true
}

// Provider computes positions for a graph.
//
// Implementations must cover every member exactly once and return the same
// positions for the same graph and seed.
type Provider interface {
	Layout(ctx context.Context, g *graph.Graph, seed uint64) (Positions, error)
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context, g *graph.Graph, seed uint64) (Positions, error)

// Layout calls f.
func (f Func) Layout(ctx context.Context, g *graph.Graph, seed uint64) (Positions, error) {
	return f(ctx, g, seed)
}

// Name returns a short identifier for p, used in cache keys and logs.
// Providers may implement Name() string; anything else is "custom".
func Name(p Provider) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "custom"
}

// Fingerprint identifies p together with its tuning, so that cached
// positions are only reused by an identically configured provider.
// Providers may implement CacheKey() string; anything else falls back to
// [Name].
func Fingerprint(p Provider) string {
	if k, ok := p.(interface{ CacheKey() string }); ok {
		return k.CacheKey()
	}
	return Name(p)
}

// normalize rescales pts into [-1, 1] around the centre of their bounding
// box. The aspect ratio is kept. A single point, or points that all
// coincide, end up at the origin.
func normalize(pts Positions) {
	if len(pts) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	scale := max(maxX-minX, maxY-minY) / 2
	for id, p := range pts {
		if scale == 0 {
			pts[id] = Point{}
			continue
		}
		pts[id] = Point{X: (p.X - cx) / scale, Y: (p.Y - cy) / scale}
	}
}

// finite reports whether every coordinate is a real number.
func finite(pts Positions) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// sortedIDs returns the ids of pts in ascending order.
func sortedIDs(pts Positions) []string {
	ids := make([]string, 0, len(pts))
	for id := range pts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
