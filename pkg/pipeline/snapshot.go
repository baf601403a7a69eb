package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/stats"
)

// Snapshot is one immutable generation of the loaded data.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	Dataset  *dataset.Dataset
	Graph    *graph.Graph
	Warnings []graph.Warning
	Stats    stats.Snapshot
	BuiltAt  time.Time
}

// Summary is the statistics view served by the stats command and endpoint.
type Summary struct {
	Snapshot uuid.UUID         `json:"snapshot"`
	Hash     string            `json:"graph_hash"`
	Stats    stats.Snapshot    `json:"stats"`
	Cohorts  []stats.CohortRow `json:"cohorts"`
	Warnings int               `json:"warnings"`
}

// Summary returns the statistics view of s.
func (s *Snapshot) Summary() Summary {
	return Summary{
		Snapshot: s.ID,
		Hash:     s.Graph.Hash(),
		Stats:    s.Stats,
		Cohorts:  stats.CohortTable(s.Stats, s.Dataset.Ranks()),
		Warnings: len(s.Warnings),
	}
}

// Members returns the member table of s.
func (s *Snapshot) Members() []stats.MemberRow {
	return stats.MemberTable(s.Graph, s.Stats, s.Dataset.Ranks())
}
