// Package preview renders layouts as standalone SVG images.
//
// The preview flattens the layout tree, draws every polygon grouped by
// layer in a fixed per-layer color, and optionally marks component ports
// with their world position and orientation. It is meant for quick visual
// inspection in a browser before a layout goes anywhere near a mask tool.
package preview

import (
	"bytes"
	"fmt"
	"math"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
)

// defaultPalette colors layers by layer number. Indexing wraps, so
// technologies with many layers stay distinguishable if not unique.
var defaultPalette = []string{
	"#4C78A8", // blue
	"#F58518", // orange
	"#54A24B", // green
	"#E45756", // red
	"#72B7B2", // teal
	"#EECA3B", // yellow
	"#B279A2", // purple
	"#FF9DA6", // pink
	"#9D755D", // brown
	"#BAB0AC", // grey
}

const portColor = "#D62728"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	padding    float64
	showPorts  bool
	background string
	colors     map[int]string
}

// WithScale sets the output pixel size per design unit. The default of 1
// renders a 300 um wide design 300 px wide.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPadding sets the margin around the layout in design units.
func WithPadding(p float64) SVGOption {
	return func(r *svgRenderer) {
		if p >= 0 {
			r.padding = p
		}
	}
}

// WithPorts draws a marker and label at every component port.
func WithPorts() SVGOption {
	return func(r *svgRenderer) { r.showPorts = true }
}

// WithBackground sets the background color. The default is white.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithLayerColor overrides the fill color for one layer number.
func WithLayerColor(layer int, color string) SVGOption {
	return func(r *svgRenderer) { r.colors[layer] = color }
}

// RenderSVG renders the layout as an SVG image.
//
// Polygons are drawn grouped by layer in ascending layer order with
// translucent fills, so overlapping metals stay readable. The SVG y axis
// points down; layout coordinates are flipped so the image matches the
// usual mask orientation with +y up.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	flat := l.Root.Flatten()
	bounds := flat.Bounds()
	if bounds.IsEmpty() {
		// An empty layout still renders as a blank frame.
		bounds = geometry.Rect{Min: geometry.Pt(0, 0), Max: geometry.Pt(1, 1)}
	}
	bounds = bounds.Pad(r.padding)

	w := bounds.W()
	h := bounds.H()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
		w, h, w*r.scale, h*r.scale)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.3f" height="%.3f" fill="%s"/>`+"\n", w, h, r.background)

	for _, id := range flat.Layers() {
		color := r.layerColor(id.Layer)
		fmt.Fprintf(&buf, `  <g id="layer-%d-%d" fill="%s" fill-opacity="0.7" stroke="%s" stroke-width="%.3f">`+"\n",
			id.Layer, id.Datatype, color, color, 0.5/r.scale)
		for _, poly := range flat[id] {
			buf.WriteString(`    <polygon points="`)
			for i, p := range poly {
				if i > 0 {
					buf.WriteByte(' ')
				}
				fmt.Fprintf(&buf, "%.3f,%.3f", p.X-bounds.Min.X, bounds.Max.Y-p.Y)
			}
			buf.WriteString(`"/>` + "\n")
		}
		buf.WriteString("  </g>\n")
	}

	if r.showPorts {
		renderPorts(&buf, l, bounds, r.scale)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderPorts marks every component port with a circle, a tick along the
// port orientation, and the qualified port name.
func renderPorts(buf *bytes.Buffer, l *layout.Layout, bounds geometry.Rect, scale float64) {
	ports := l.ComponentPorts()
	if len(ports) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g id="ports" stroke="%s" fill="none" stroke-width="%.3f">`+"\n", portColor, 1.0/scale)
	for _, p := range ports {
		x := p.Position.X - bounds.Min.X
		y := bounds.Max.Y - p.Position.Y
		radius := math.Max(p.Width/4, 1.5/scale)
		tick := math.Max(p.Width/2, 3/scale)
		rad := geometry.Radians(p.Orientation)
		// SVG y points down, so the y component of the tick flips.
		fmt.Fprintf(buf, `    <circle cx="%.3f" cy="%.3f" r="%.3f"/>`+"\n", x, y, radius)
		fmt.Fprintf(buf, `    <line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f"/>`+"\n",
			x, y, x+tick*math.Cos(rad), y-tick*math.Sin(rad))
		fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f" font-size="%.3f" fill="%s" stroke="none">%s</text>`+"\n",
			x+radius, y-radius, math.Max(p.Width*0.6, 8/scale), portColor, p.Name)
	}
	buf.WriteString("  </g>\n")
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		scale:      1,
		padding:    10,
		background: "#FFFFFF",
		colors:     map[int]string{},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) layerColor(layer int) string {
	if c, ok := r.colors[layer]; ok {
		return c
	}
	idx := layer % len(defaultPalette)
	if idx < 0 {
		idx += len(defaultPalette)
	}
	return defaultPalette[idx]
}
