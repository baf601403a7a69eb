// Package nodelink renders the member graph as a node-link diagram.
//
// [ToDOT] turns a graph into Graphviz DOT source. Members are drawn as
// circles filled by cohort colour ([DefaultPalette], black for unknown
// cohorts) and labelled with their first name; the full name and cohort
// appear as a hover tooltip. Edges are grey and thin, with a tooltip giving
// the endpoints, weight and kind.
//
// Passing a path result in [Options].Highlight draws that path on top: its
// edges turn red and thick, its members grow, and the source and target grow
// the most. Passing [Options].Positions pins every member at the coordinates
// computed by a layout provider, which the neato engine keeps as given.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{
//	    Positions: pts,
//	    Highlight: &res,
//	    Source:    "Ada Lovelace",
//	    Target:    "Charles Babbage",
//	})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]. PDF and PNG conversion shells out to
// rsvg-convert from librsvg.
package nodelink
