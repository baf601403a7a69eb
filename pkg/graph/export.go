package graph

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// =============================================================================
// Document - Graph Serialization
// =============================================================================

// Document is the serialization format of a built graph, used for API
// responses and `kinship export`. Unlike a dataset it only contains what
// survived the build: skipped relationships are gone and duplicate pairs
// are collapsed.
type Document struct {
	Hash  string    `json:"hash" bson:"hash"`
	Nodes []NodeDoc `json:"nodes" bson:"nodes"`
	Edges []EdgeDoc `json:"edges" bson:"edges"`
}

// NodeDoc is a serialized member.
type NodeDoc struct {
	ID     string `json:"id" bson:"id"`
	Cohort string `json:"cohort" bson:"cohort"`
}

// EdgeDoc is a serialized relationship.
type EdgeDoc struct {
	From   string  `json:"from" bson:"from"`
	To     string  `json:"to" bson:"to"`
	Weight float64 `json:"weight" bson:"weight"`
	Kind   string  `json:"kind" bson:"kind"`
}

// ToDocument converts g to its serialization format. Nodes are sorted by id
// and edges by (from, to) for deterministic output.
func (g *Graph) ToDocument() Document {
	doc := Document{
		Hash:  g.hash,
		Nodes: make([]NodeDoc, 0, len(g.order)),
		Edges: make([]EdgeDoc, 0, len(g.edges)),
	}
	for _, id := range g.SortedIDs() {
		doc.Nodes = append(doc.Nodes, NodeDoc{ID: id, Cohort: g.nodes[id].Cohort})
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, EdgeDoc{From: e.From, To: e.To, Weight: e.Weight, Kind: e.Kind})
	}
	slices.SortFunc(doc.Edges, func(a, b EdgeDoc) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
	return doc
}

// WriteJSON writes g as an indented JSON [Document].
func (g *Graph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.ToDocument()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes g as JSON to path.
func (g *Graph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return g.WriteJSON(f)
}
