package nodelink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/path"
)

// Node sizes in points, by role.
const (
	EndpointSize = 25.0
	PathSize     = 18.0
	NodeSize     = 12.0
)

// Edge styling.
const (
	PathEdgeColor  = "red"
	OtherEdgeColor = "#888888"
)

// DefaultScale is the drawing size, in inches, of one layout unit.
const DefaultScale = 6.0

// Options configures node-link diagram generation.
type Options struct {
	// Positions pins members in place (neato "pos" with "!"). When nil the
	// layout engine places members itself.
	Positions layout.Positions

	// Highlight marks the members and steps of a path.
	Highlight *path.Result

	// Source and Target are drawn enlarged. They usually match the
	// highlighted path's endpoints but are honoured without one.
	Source, Target string

	// Palette colours members by cohort; DefaultPalette when nil.
	Palette Palette

	// Scale converts layout units to inches; DefaultScale when zero.
	Scale float64
}

// ToDOT converts g to Graphviz DOT source.
//
// Members are emitted in sorted id order and edges in graph order, so the
// output is stable for a given graph and options.
func ToDOT(g *graph.Graph, opts Options) string {
	if opts.Palette == nil {
		opts.Palette = DefaultPalette
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=\"edgesfirst\";\n")
	if opts.Positions != nil {
		buf.WriteString("  splines=true;\n")
	} else {
		buf.WriteString("  overlap=false;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=8, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowsize=0.5];\n")
	buf.WriteString("\n")

	for _, id := range g.SortedIDs() {
		n, _ := g.Node(id)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, opts Options) []string {
	size := nodeSize(n.ID, opts)
	attrs := []string{
		fmt.Sprintf("label=%q", firstName(n.ID)),
		fmt.Sprintf("tooltip=%q", n.ID+"\nClass: "+n.Cohort),
		fmt.Sprintf("fillcolor=%q", opts.Palette.Color(n.Cohort)),
		fmt.Sprintf("width=%s", fmtFloat(size/36)),
	}
	if size > NodeSize {
		attrs = append(attrs, "penwidth=2")
	}
	if p, ok := opts.Positions[n.ID]; ok {
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(p.X*opts.Scale), fmtFloat(p.Y*opts.Scale)))
	}
	return attrs
}

func nodeSize(id string, opts Options) float64 {
	switch {
	case id == opts.Source || id == opts.Target:
		return EndpointSize
	case opts.Highlight != nil && opts.Highlight.Contains(id):
		return PathSize
	default:
		return NodeSize
	}
}

func edgeAttrs(e graph.Edge, opts Options) []string {
	tooltip := fmt.Sprintf("%s → %s\nWeight: %s\nType: %s", e.From, e.To, fmtFloat(e.Weight), e.Kind)
	if opts.Highlight != nil && opts.Highlight.HasStep(e.From, e.To) {
		return []string{fmt.Sprintf("color=%q", PathEdgeColor), "penwidth=3", fmt.Sprintf("tooltip=%q", tooltip)}
	}
	return []string{fmt.Sprintf("color=%q", OtherEdgeColor), "penwidth=0.5", fmt.Sprintf("tooltip=%q", tooltip)}
}

// firstName labels a member by the first word of its id.
func firstName(id string) string {
	if f := strings.Fields(id); len(f) > 0 {
		return f[0]
	}
	return id
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
