package stats

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/graph"
)

// CohortRow is one line of the cohort distribution table.
type CohortRow struct {
	Cohort  string  `json:"cohort"`
	Members int     `json:"members"`
	Rank    float64 `json:"rank"`
}

// MemberRow is one line of the member table.
type MemberRow struct {
	ID      string  `json:"name"`
	Cohort  string  `json:"class"`
	Rank    float64 `json:"rank"`
	Bigs    int     `json:"bigs"`
	Littles int     `json:"littles"`
}

// rankOf looks up a cohort in rank, falling back to [dataset.UnrankedWeight].
func rankOf(rank map[string]float64, cohort string) float64 {
	if r, ok := rank[cohort]; ok {
		return r
	}
	return dataset.UnrankedWeight
}

// CohortTable lists the cohorts of s ordered by rank ascending, then label.
// rank may be nil, in which case every cohort is unranked and the table is
// sorted by label.
func CohortTable(s Snapshot, rank map[string]float64) []CohortRow {
	rows := make([]CohortRow, 0, len(s.CohortCounts))
	for cohort, n := range s.CohortCounts {
		rows = append(rows, CohortRow{Cohort: cohort, Members: n, Rank: rankOf(rank, cohort)})
	}
	slices.SortFunc(rows, func(a, b CohortRow) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), cmp.Compare(a.Cohort, b.Cohort))
	})
	return rows
}

// MemberTable lists every member of g sorted by id, with its cohort rank and
// the degrees recorded in s. Bigs is the in-degree and Littles the
// out-degree. Members missing from s get zero degrees.
func MemberTable(g *graph.Graph, s Snapshot, rank map[string]float64) []MemberRow {
	if g == nil {
		return nil
	}
	ids := g.SortedIDs()
	rows := make([]MemberRow, 0, len(ids))
	for _, id := range ids {
		n, _ := g.Node(id)
		d := s.Degrees[id]
		rows = append(rows, MemberRow{
			ID:      id,
			Cohort:  n.Cohort,
			Rank:    rankOf(rank, n.Cohort),
			Bigs:    d.In,
			Littles: d.Out,
		})
	}
	return rows
}
