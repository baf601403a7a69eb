package graph

import (
	"iter"
	"maps"
	"slices"
)

// Node is a member of the graph.
type Node struct {
	ID     string // Unique member identifier
	Cohort string // Cohort label, never empty after Build
	Index  int    // Position in the dataset's member list
}

// Edge is a directed relationship between two members.
type Edge struct {
	From   string
	To     string
	Weight float64 // Always positive
	Kind   string  // Never empty after Build
}

// IsSelfLoop reports whether the edge starts and ends at the same member.
func (e Edge) IsSelfLoop() bool { return e.From == e.To }

type pair struct{ from, to string }

// Graph is an immutable weighted directed graph of members.
//
// The zero value is an empty graph; use [Build] to create a populated one.
// Graph is safe for concurrent use.
type Graph struct {
	nodes    map[string]*Node
	order    []string // member ids in dataset order
	edges    []Edge   // one per ordered pair, first-occurrence order
	index    map[pair]int
	outgoing map[string][]int // node id -> indices into edges
	incoming map[string][]int
	hash     string
}

func newGraph(nodeHint, edgeHint int) *Graph {
	return &Graph{
		nodes:    make(map[string]*Node, nodeHint),
		order:    make([]string, 0, nodeHint),
		edges:    make([]Edge, 0, edgeHint),
		index:    make(map[pair]int, edgeHint),
		outgoing: make(map[string][]int, nodeHint),
		incoming: make(map[string][]int, nodeHint),
	}
}

// NodeCount returns the number of members.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges (distinct ordered pairs).
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether id is a member of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the member with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns all members in dataset order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = *g.nodes[id]
	}
	return out
}

// IDs returns all member ids in dataset order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// SortedIDs returns all member ids in ascending lexical order.
func (g *Graph) SortedIDs() []string { return slices.Sorted(maps.Keys(g.nodes)) }

// Edges returns a copy of all edges in first-occurrence order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Edge returns the edge from → to, if any.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	i, ok := g.index[pair{from, to}]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Out iterates over the edges leaving id in first-occurrence order.
func (g *Graph) Out(id string) iter.Seq[Edge] {
	return g.each(g.outgoing[id])
}

// In iterates over the edges entering id in first-occurrence order.
func (g *Graph) In(id string) iter.Seq[Edge] {
	return g.each(g.incoming[id])
}

func (g *Graph) each(idx []int) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, i := range idx {
			if !yield(g.edges[i]) {
				return
			}
		}
	}
}

// OutDegree returns the number of edges leaving id. Returns 0 if the node
// doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of edges entering id. Returns 0 if the node
// doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Hash returns a SHA-256 content hash of the graph. Two graphs with the same
// members, cohorts, edges, weights and kinds have the same hash regardless
// of the order in which the dataset listed them.
func (g *Graph) Hash() string { return g.hash }
