// Package render groups the visual output formats for resolved layouts.
//
// # Overview
//
// Rendering is split by output style:
//
//   - Layout previews (in the [preview] subpackage)
//   - Connectivity diagrams (in the [graph] subpackage)
//
// # Layout Previews
//
// The [preview] subpackage draws the flattened polygon geometry of a
// resolved layout as SVG, with per-layer colors taken from the
// technology definition and optional port markers.
//
//	svg := preview.RenderSVG(l, preview.WithPorts())
//
// # Connectivity Diagrams
//
// The [graph] subpackage renders the design's component connection graph
// using Graphviz. Components appear as boxes connected by port-labelled
// edges; DOT output can be rasterized to SVG or PNG.
//
//	dot := graph.ToDOT(d, graph.Options{})
//	svg, err := graph.RenderSVG(dot)
//	png, err := graph.RenderPNG(dot)
//
// [preview]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/render/preview
// [graph]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/render/graph
package render
