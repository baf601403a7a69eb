package graph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// GonumView is a gonum representation of a Graph. Gonum node ids are dense
// and assigned in sorted member-id order, so the same Graph always produces
// the same view.
type GonumView struct {
	ids   []string
	index map[string]int64
}

func newGonumView(g *Graph) *GonumView {
	ids := g.SortedIDs()
	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
	}
	return &GonumView{ids: ids, index: index}
}

// NodeID returns the gonum id of a member.
func (v *GonumView) NodeID(id string) (int64, bool) {
	n, ok := v.index[id]
	return n, ok
}

// Member returns the member id for a gonum node id.
func (v *GonumView) Member(n int64) string {
	if n < 0 || int(n) >= len(v.ids) {
		return ""
	}
	return v.ids[n]
}

// Len returns the number of nodes in the view.
func (v *GonumView) Len() int { return len(v.ids) }

// WeightedDirected returns g as a gonum weighted directed graph. Self-loops
// are omitted because gonum's simple graphs do not allow them; they never
// lie on a shortest path anyway.
func (g *Graph) WeightedDirected() (*simple.WeightedDirectedGraph, *GonumView) {
	v := newGonumView(g)
	wg := simple.NewWeightedDirectedGraph(0, 0)
	for i := range v.ids {
		wg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		if e.IsSelfLoop() {
			continue
		}
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(v.index[e.From]), simple.Node(v.index[e.To]), e.Weight))
	}
	return wg, v
}

// Undirected returns the shape of g as a gonum undirected graph, as used by
// force-directed layouts. Direction, weights and self-loops are dropped.
func (g *Graph) Undirected() (*simple.UndirectedGraph, *GonumView) {
	v := newGonumView(g)
	ug := simple.NewUndirectedGraph()
	for i := range v.ids {
		ug.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		if e.IsSelfLoop() {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(v.index[e.From]), simple.Node(v.index[e.To])))
	}
	return ug, v
}
