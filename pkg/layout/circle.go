package layout

import (
	"context"
	"math"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/graph"
)

// Circle places members evenly on the unit circle in sorted-id order. The
// seed rotates the starting angle.
type Circle struct{}

// Name returns "circle".
func (Circle) Name() string { return "circle" }

// Layout returns circular positions. It never fails for a non-nil graph.
func (Circle) Layout(_ context.Context, g *graph.Graph, seed uint64) (Positions, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is nil")
	}
	ids := g.SortedIDs()
	pts := make(Positions, len(ids))
	if len(ids) == 1 {
		pts[ids[0]] = Point{}
		return pts, nil
	}
	offset := float64(seed%360) * math.Pi / 180
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		a := offset + step*float64(i)
		pts[id] = Point{X: math.Cos(a), Y: math.Sin(a)}
	}
	return pts, nil
}
