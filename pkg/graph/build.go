package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

// WarningCode classifies a non-fatal build problem.
type WarningCode string

const (
	// SkippedEdge marks a relationship left out of the graph because its
	// weight was missing, malformed or not positive.
	SkippedEdge WarningCode = "SKIPPED_EDGE"

	// OverwrittenEdge marks a relationship replaced by a later one for the
	// same ordered pair.
	OverwrittenEdge WarningCode = "OVERWRITTEN_EDGE"
)

// Warning describes a relationship the builder did not take as-is.
type Warning struct {
	Code   WarningCode
	Index  int // Position in the dataset's relationship list
	From   string
	To     string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: relationship %d (%s -> %s): %s", w.Code, w.Index, w.From, w.To, w.Reason)
}

type buildOptions struct {
	strictWeights bool
}

// Option configures [Build].
type Option func(*buildOptions)

// WithStrictWeights makes zero and negative weights fatal (INVALID_WEIGHT)
// instead of skipping the relationship with a warning. Missing or
// non-numeric weights are still skipped.
func WithStrictWeights() Option {
	return func(o *buildOptions) { o.strictWeights = true }
}

// Build converts ds into an immutable Graph.
//
// It returns the graph together with the warnings collected along the way.
// A non-nil error is always an *errors.Error coded DUPLICATE_NODE,
// UNKNOWN_ENDPOINT, INVALID_WEIGHT or INVALID_DATASET, and no graph is
// returned with it. ds is not modified.
func Build(ds *dataset.Dataset, opts ...Option) (*Graph, []Warning, error) {
	var cfg buildOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ds.Validate(); err != nil {
		return nil, nil, err
	}

	g := newGraph(len(ds.Members), len(ds.Relationships))
	for i, m := range ds.Members {
		if _, exists := g.nodes[m.ID]; exists {
			return nil, nil, errors.New(errors.ErrCodeDuplicateNode, "duplicate member %q", m.ID)
		}
		g.nodes[m.ID] = &Node{ID: m.ID, Cohort: m.CohortOrDefault(), Index: i}
		g.order = append(g.order, m.ID)
	}

	var warnings []Warning
	for i, r := range ds.Relationships {
		w, err := r.Weight.Float()
		if err != nil {
			warnings = append(warnings, Warning{Code: SkippedEdge, Index: i, From: r.From, To: r.To, Reason: err.Error()})
			continue
		}
		if w <= 0 {
			if cfg.strictWeights {
				return nil, nil, errors.New(errors.ErrCodeInvalidWeight,
					"relationship %d (%s -> %s) has non-positive weight %v", i, r.From, r.To, w)
			}
			warnings = append(warnings, Warning{Code: SkippedEdge, Index: i, From: r.From, To: r.To,
				Reason: fmt.Sprintf("non-positive weight %v", w)})
			continue
		}
		if _, ok := g.nodes[r.From]; !ok {
			return nil, nil, errors.New(errors.ErrCodeUnknownEndpoint,
				"relationship %d references unknown source member %q", i, r.From)
		}
		if _, ok := g.nodes[r.To]; !ok {
			return nil, nil, errors.New(errors.ErrCodeUnknownEndpoint,
				"relationship %d references unknown target member %q", i, r.To)
		}
		if prev, replaced := g.setEdge(Edge{From: r.From, To: r.To, Weight: w, Kind: r.KindOrDefault()}); replaced {
			warnings = append(warnings, Warning{Code: OverwrittenEdge, Index: i, From: r.From, To: r.To,
				Reason: fmt.Sprintf("replaces weight %v (%s)", prev.Weight, prev.Kind)})
		}
	}

	g.hash = g.computeHash()
	return g, warnings, nil
}

// setEdge inserts e or overwrites the existing edge for the same ordered
// pair, returning the replaced edge.
func (g *Graph) setEdge(e Edge) (Edge, bool) {
	key := pair{e.From, e.To}
	if i, ok := g.index[key]; ok {
		prev := g.edges[i]
		g.edges[i] = e
		return prev, true
	}
	i := len(g.edges)
	g.edges = append(g.edges, e)
	g.index[key] = i
	g.outgoing[e.From] = append(g.outgoing[e.From], i)
	g.incoming[e.To] = append(g.incoming[e.To], i)
	return Edge{}, false
}

// computeHash hashes a canonical encoding: nodes sorted by id, then edges
// sorted by (from, to). Fields are NUL separated so ids may contain any
// printable character.
func (g *Graph) computeHash() string {
	var b strings.Builder
	for _, id := range g.SortedIDs() {
		n := g.nodes[id]
		b.WriteString("n\x00")
		b.WriteString(n.ID)
		b.WriteByte(0)
		b.WriteString(n.Cohort)
		b.WriteByte('\n')
	}

	edges := slices.Clone(g.edges)
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
	for _, e := range edges {
		b.WriteString("e\x00")
		b.WriteString(e.From)
		b.WriteByte(0)
		b.WriteString(e.To)
		b.WriteByte(0)
		b.WriteString(strconv.FormatFloat(e.Weight, 'g', -1, 64))
		b.WriteByte(0)
		b.WriteString(e.Kind)
		b.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
