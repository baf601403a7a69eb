package layout

import (
	"cmp"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// orderedGraph wraps a gonum undirected graph so node and neighbour
// iteration happen in ascending id order. simple graphs iterate maps, which
// would make the seeded initial placement, and the force sums, depend on
// map order.
type orderedGraph struct {
	*simple.UndirectedGraph
}

func (g orderedGraph) Nodes() gonum.Nodes {
	return sortedNodes(g.UndirectedGraph.Nodes())
}

func (g orderedGraph) From(id int64) gonum.Nodes {
	return sortedNodes(g.UndirectedGraph.From(id))
}

func sortedNodes(it gonum.Nodes) gonum.Nodes {
	nodes := gonum.NodesOf(it)
	slices.SortFunc(nodes, func(a, b gonum.Node) int { return cmp.Compare(a.ID(), b.ID()) })
	return iterator.NewOrderedNodes(nodes)
}
