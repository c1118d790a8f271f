// Package render turns [tree.Layout] documents into output formats.
//
// # Overview
//
//   - [SVG]: hand-built SVG. Tree and cluster layouts draw a circle per node
//     and a curved link per edge; treemaps draw nested rectangles.
//   - [ToDOT] and [RenderDOTSVG]: Graphviz DOT export with node positions
//     pinned, rendered through go-graphviz.
//   - [ToPDF] and [ToPNG]: SVG conversion through the external rsvg-convert
//     tool (from librsvg).
//   - [JSON]: the layout document itself.
//
//	svg := render.SVG(l, render.WithLabels())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
package render
