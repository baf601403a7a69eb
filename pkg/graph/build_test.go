package graph

import (
	"bytes"
	"slices"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

func members(ids ...string) []dataset.Member {
	out := make([]dataset.Member, len(ids))
	for i, id := range ids {
		out[i] = dataset.Member{ID: id, Cohort: "Mu"}
	}
	return out
}

func rel(from, to string, w dataset.Weight, kind string) dataset.Relationship {
	return dataset.Relationship{From: from, To: to, Weight: w, Kind: kind}
}

func num(f float64) dataset.Weight { return dataset.NumberWeight(f) }

func TestBuildBasic(t *testing.T) {
	ds := &dataset.Dataset{
		Members: []dataset.Member{{ID: "A", Cohort: "Mu"}, {ID: "B"}, {ID: "C", Cohort: "Nu"}},
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), "big-little"),
			rel("B", "C", dataset.TextWeight("2.5"), ""),
		},
	}
	g, warnings, err := Build(ds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if n, _ := g.Node("B"); n.Cohort != dataset.DefaultCohort {
		t.Errorf("B cohort = %q, want %q", n.Cohort, dataset.DefaultCohort)
	}
	e, ok := g.Edge("B", "C")
	if !ok || e.Weight != 2.5 || e.Kind != dataset.DefaultKind {
		t.Errorf("Edge(B,C) = %+v, %v", e, ok)
	}
	if _, ok := g.Edge("C", "B"); ok {
		t.Error("reverse edge must not be created")
	}
	if got := g.IDs(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("IDs() = %v", got)
	}
}

func TestBuildSkipsMalformedWeights(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("A", "B", "C", "D"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), ""),
			rel("A", "C", dataset.TextWeight("nan"), ""),
			rel("A", "D", dataset.TextWeight(""), ""),
			rel("B", "C", dataset.Weight{}, ""),
			rel("B", "D", dataset.TextWeight("abc"), ""),
			rel("C", "D", dataset.TextWeight("4"), ""),
		},
	}
	g, warnings, err := Build(ds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if len(warnings) != 4 {
		t.Fatalf("warnings = %d, want 4", len(warnings))
	}
	for _, w := range warnings {
		if w.Code != SkippedEdge {
			t.Errorf("warning code = %s, want %s", w.Code, SkippedEdge)
		}
	}
	if warnings[0].Index != 1 || warnings[0].From != "A" || warnings[0].To != "C" {
		t.Errorf("first warning = %+v", warnings[0])
	}
}

func TestBuildNonPositiveWeights(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("A", "B", "C"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(0), ""),
			rel("B", "C", num(-2), ""),
			rel("A", "C", num(3), ""),
		},
	}

	g, warnings, err := Build(ds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 1 || len(warnings) != 2 {
		t.Errorf("lenient: edges=%d warnings=%d, want 1 and 2", g.EdgeCount(), len(warnings))
	}

	_, _, err = Build(ds, WithStrictWeights())
	if !errors.Is(err, errors.ErrCodeInvalidWeight) {
		t.Errorf("strict: error = %v, want INVALID_WEIGHT", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		ds   *dataset.Dataset
		code errors.Code
	}{
		{
			name: "duplicate member",
			ds:   &dataset.Dataset{Members: members("A", "B", "A")},
			code: errors.ErrCodeDuplicateNode,
		},
		{
			name: "unknown target",
			ds: &dataset.Dataset{
				Members:       members("A"),
				Relationships: []dataset.Relationship{rel("A", "Z", num(1), "")},
			},
			code: errors.ErrCodeUnknownEndpoint,
		},
		{
			name: "unknown source",
			ds: &dataset.Dataset{
				Members:       members("A"),
				Relationships: []dataset.Relationship{rel("Z", "A", num(1), "")},
			},
			code: errors.ErrCodeUnknownEndpoint,
		},
		{
			name: "empty target",
			ds: &dataset.Dataset{
				Members:       members("A", "B"),
				Relationships: []dataset.Relationship{rel("A", "", num(1), "")},
			},
			code: errors.ErrCodeUnknownEndpoint,
		},
		{
			name: "empty source",
			ds: &dataset.Dataset{
				Members:       members("A", "B"),
				Relationships: []dataset.Relationship{rel("", "B", num(1), "")},
			},
			code: errors.ErrCodeUnknownEndpoint,
		},
		{
			name: "empty member id",
			ds:   &dataset.Dataset{Members: members("A", "")},
			code: errors.ErrCodeInvalidDataset,
		},
		{
			name: "nil dataset",
			ds:   nil,
			code: errors.ErrCodeInvalidDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, err := Build(tt.ds)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if g != nil {
				t.Error("graph must be nil on error")
			}
		})
	}
}

func TestBuildMalformedWeightBeatsUnknownEndpoint(t *testing.T) {
	ds := &dataset.Dataset{
		Members:       members("A"),
		Relationships: []dataset.Relationship{rel("A", "ghost", dataset.TextWeight("nan"), "")},
	}
	g, warnings, err := Build(ds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 0 || len(warnings) != 1 {
		t.Errorf("edges=%d warnings=%d, want 0 and 1", g.EdgeCount(), len(warnings))
	}
}

func TestBuildMalformedWeightBeatsEmptyEndpoint(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("A", "B"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), ""),
			rel("", "B", dataset.TextWeight("nan"), ""),
			rel("A", "", dataset.Weight{}, ""),
		},
	}
	g, warnings, err := Build(ds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warnings), warnings)
	}
	for i, w := range warnings {
		if w.Code != SkippedEdge || w.Index != i+1 {
			t.Errorf("warning %d = %+v, want SkippedEdge at index %d", i, w, i+1)
		}
	}
}

func TestBuildOverwritesDuplicatePair(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("A", "B", "C"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(5), "classmate"),
			rel("A", "C", num(1), ""),
			rel("A", "B", num(2), "big-little"),
		},
	}
	g, warnings, err := Build(ds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e, _ := g.Edge("A", "B")
	if e.Weight != 2 || e.Kind != "big-little" {
		t.Errorf("Edge(A,B) = %+v, want the later relationship", e)
	}
	if g.EdgeCount() != 2 || g.OutDegree("A") != 2 || g.InDegree("B") != 1 {
		t.Errorf("edges=%d out(A)=%d in(B)=%d", g.EdgeCount(), g.OutDegree("A"), g.InDegree("B"))
	}
	if len(warnings) != 1 || warnings[0].Code != OverwrittenEdge || warnings[0].Index != 2 {
		t.Errorf("warnings = %v", warnings)
	}
	if edges := g.Edges(); edges[0].From != "A" || edges[0].To != "B" {
		t.Errorf("overwritten edge should keep its first position, got %+v", edges[0])
	}
}

func TestBuildDeterminism(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("A", "B", "C"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), "big-little"),
			rel("B", "C", num(2), "classmate"),
		},
	}
	shuffled := &dataset.Dataset{
		Members: members("C", "A", "B"),
		Relationships: []dataset.Relationship{
			rel("B", "C", num(2), "classmate"),
			rel("A", "B", num(1), "big-little"),
		},
	}

	g1, _, _ := Build(ds)
	g2, _, _ := Build(ds)
	g3, _, _ := Build(shuffled)

	if g1.Hash() != g2.Hash() {
		t.Error("building twice should give the same hash")
	}
	if g1.Hash() != g3.Hash() {
		t.Error("input order should not change the hash")
	}

	var b1, b3 bytes.Buffer
	if err := g1.WriteJSON(&b1); err != nil {
		t.Fatal(err)
	}
	if err := g3.WriteJSON(&b3); err != nil {
		t.Fatal(err)
	}
	if b1.String() != b3.String() {
		t.Errorf("documents differ:\n%s\n%s", b1.String(), b3.String())
	}

	changed := &dataset.Dataset{
		Members: members("A", "B", "C"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), "big-little"),
			rel("B", "C", num(3), "classmate"),
		},
	}
	g4, _, _ := Build(changed)
	if g4.Hash() == g1.Hash() {
		t.Error("different weights should change the hash")
	}
}

func TestBuildDoesNotMutateDataset(t *testing.T) {
	ds := &dataset.Dataset{
		Members:       []dataset.Member{{ID: "A"}, {ID: "B"}},
		Relationships: []dataset.Relationship{rel("A", "B", num(1), "")},
	}
	if _, _, err := Build(ds); err != nil {
		t.Fatal(err)
	}
	if ds.Members[0].Cohort != "" || ds.Relationships[0].Kind != "" {
		t.Error("Build must not fill defaults into the dataset")
	}
}

func TestOutInIterators(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("A", "B", "C"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), ""),
			rel("A", "C", num(1), ""),
			rel("C", "A", num(1), ""),
			rel("A", "A", num(1), ""),
		},
	}
	g, _, err := Build(ds)
	if err != nil {
		t.Fatal(err)
	}

	var out []string
	for e := range g.Out("A") {
		out = append(out, e.To)
	}
	if !slices.Equal(out, []string{"B", "C", "A"}) {
		t.Errorf("Out(A) = %v", out)
	}

	var in []string
	for e := range g.In("A") {
		in = append(in, e.From)
	}
	if !slices.Equal(in, []string{"C", "A"}) {
		t.Errorf("In(A) = %v", in)
	}

	for range g.Out("missing") {
		t.Error("unknown node should have no edges")
	}
}

func TestGonumViews(t *testing.T) {
	ds := &dataset.Dataset{
		Members: members("B", "A", "C"),
		Relationships: []dataset.Relationship{
			rel("A", "B", num(1), ""),
			rel("B", "A", num(2), ""),
			rel("C", "C", num(1), ""),
		},
	}
	g, _, err := Build(ds)
	if err != nil {
		t.Fatal(err)
	}

	wg, v := g.WeightedDirected()
	a, _ := v.NodeID("A")
	b, _ := v.NodeID("B")
	if a != 0 || b != 1 || v.Member(2) != "C" {
		t.Errorf("ids not assigned in sorted order: A=%d B=%d", a, b)
	}
	if w, ok := wg.Weight(b, a); !ok || w != 2 {
		t.Errorf("Weight(B,A) = %v, %v", w, ok)
	}
	if wg.Edges().Len() != 2 {
		t.Errorf("directed edges = %d, want 2 (self-loop dropped)", wg.Edges().Len())
	}

	ug, _ := g.Undirected()
	if ug.Edges().Len() != 1 {
		t.Errorf("undirected edges = %d, want 1", ug.Edges().Len())
	}
	if v.Member(99) != "" {
		t.Error("out of range gonum id should map to empty member")
	}
}

func TestDocumentJSON(t *testing.T) {
	ds := &dataset.Dataset{
		Members:       members("B", "A"),
		Relationships: []dataset.Relationship{rel("B", "A", num(1.5), "classmate")},
	}
	g, _, err := Build(ds)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := g.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Hash != g.Hash() || len(doc.Nodes) != 2 || doc.Nodes[0].ID != "A" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Edges[0] != (EdgeDoc{From: "B", To: "A", Weight: 1.5, Kind: "classmate"}) {
		t.Errorf("edge = %+v", doc.Edges[0])
	}
}
