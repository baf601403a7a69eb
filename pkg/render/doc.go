// Package render holds output-format helpers shared by the renderers.
//
// The diagram itself is produced by the [nodelink] subpackage, which emits
// Graphviz DOT and renders SVG in-process. [Convert], [ToPDF] and [ToPNG]
// turn that SVG into other formats through the external rsvg-convert tool:
//
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [Format] names the supported outputs and maps file extensions to them.
package render
