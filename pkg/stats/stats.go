package stats

import (
	"github.com/matzehuels/kinship/pkg/graph"
)

// Degree counts the directed edges touching one member.
//
// In counts relationships pointing at the member (its "bigs"), Out counts
// relationships it originates (its "littles"). A self-loop counts once in
// each.
type Degree struct {
	In  int `json:"in"`
	Out int `json:"out"`
}

// Snapshot is a read-only summary of a graph.
type Snapshot struct {
	NodeCount      int               `json:"node_count"`
	EdgeCount      int               `json:"edge_count"`
	EdgeKindCounts map[string]int    `json:"edge_kind_counts"`
	CohortCounts   map[string]int    `json:"cohort_counts"`
	Degrees        map[string]Degree `json:"degrees"`
}

// Summarize computes a Snapshot of g. A nil graph yields an empty snapshot
// with non-nil maps.
func Summarize(g *graph.Graph) Snapshot {
	s := Snapshot{
		EdgeKindCounts: make(map[string]int),
		CohortCounts:   make(map[string]int),
		Degrees:        make(map[string]Degree),
	}
	if g == nil {
		return s
	}

	s.NodeCount = g.NodeCount()
	s.EdgeCount = g.EdgeCount()
	for _, n := range g.Nodes() {
		s.CohortCounts[n.Cohort]++
		s.Degrees[n.ID] = Degree{In: g.InDegree(n.ID), Out: g.OutDegree(n.ID)}
	}
	for _, e := range g.Edges() {
		s.EdgeKindCounts[e.Kind]++
	}
	return s
}

// KindCount returns the number of edges with the given kind.
func (s Snapshot) KindCount(kind string) int {
	return s.EdgeKindCounts[kind]
}

// Degree returns the degree of a member, and false if it is unknown.
func (s Snapshot) Degree(id string) (Degree, bool) {
	d, ok := s.Degrees[id]
	return d, ok
}
