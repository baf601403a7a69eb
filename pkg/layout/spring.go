package layout

import (
	"context"
	"fmt"
	"math/rand/v2"

	gonumlayout "gonum.org/v1/gonum/graph/layout"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/graph"
)

// Spring tuning defaults.
const (
	DefaultUpdates   = 50
	DefaultRepulsion = 1.0
	DefaultRate      = 0.05
	DefaultTheta     = 0.2
)

// Spring is a force-directed layout using gonum's Eades algorithm.
//
// Edges attract and all members repel, ignoring direction and weight.
// Initial coordinates come from a PCG generator seeded with the layout seed.
// Gonum node ids follow sorted member order and are visited in id order, so
// a given graph and seed always produce the same positions.
type Spring struct {
	Updates   int     // Optimiser iterations; DefaultUpdates when zero
	Repulsion float64 // Node repulsion strength; DefaultRepulsion when zero
	Rate      float64 // Step size per iteration; DefaultRate when zero
	Theta     float64 // Barnes-Hut approximation threshold; DefaultTheta when zero
}

// NewSpring returns a Spring with default tuning.
func NewSpring() *Spring {
	return &Spring{}
}

// Name returns "spring".
func (s *Spring) Name() string { return "spring" }

// CacheKey returns the name and effective tuning, such as
// "spring:u50:r1:a0.05:t0.2".
func (s *Spring) CacheKey() string {
	return fmt.Sprintf("spring:u%d:r%g:a%g:t%g",
		orDefault(s.Updates, DefaultUpdates),
		orDefaultF(s.Repulsion, DefaultRepulsion),
		orDefaultF(s.Rate, DefaultRate),
		orDefaultF(s.Theta, DefaultTheta))
}

// Layout runs the optimiser and returns normalised positions.
//
// ctx is checked between iterations. An error is returned if ctx is done or
// the optimiser diverges.
func (s *Spring) Layout(ctx context.Context, g *graph.Graph, seed uint64) (Positions, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is nil")
	}
	switch g.NodeCount() {
	case 0:
		return Positions{}, nil
	case 1:
		return Positions{g.IDs()[0]: {}}, nil
	}

	ug, view := g.Undirected()
	eades := &gonumlayout.EadesR2{
		Updates:   orDefault(s.Updates, DefaultUpdates),
		Repulsion: orDefaultF(s.Repulsion, DefaultRepulsion),
		Rate:      orDefaultF(s.Rate, DefaultRate),
		Theta:     orDefaultF(s.Theta, DefaultTheta),
		Src:       rand.NewPCG(seed, seed^0xdeadbeef),
	}
	opt := gonumlayout.NewOptimizerR2(orderedGraph{ug}, eades.Update)
	for opt.Update() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	pts := make(Positions, view.Len())
	for i := range view.Len() {
		c := opt.Coord2(int64(i))
		pts[view.Member(int64(i))] = Point{X: c.X, Y: c.Y}
	}
	if !finite(pts) {
		return nil, errors.New(errors.ErrCodeInternal, "spring layout diverged (seed %d)", seed)
	}
	normalize(pts)
	return pts, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultF(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
