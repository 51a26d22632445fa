package generate

import (
	"math"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

const defaultGroundWidth = 10.0

func cpwLine() *Generator {
	return &Generator{
		Type: "cpw_line",
		Desc: "Coplanar waveguide section: center conductor with ground planes either side.",
		Params: []ParamInfo{
			{Name: "length", Desc: "Line length"},
			{Name: "width", Desc: "Center conductor width"},
			{Name: "gap", Desc: "Gap between conductor and grounds"},
			{Name: "ground_width", Desc: "Ground plane width", Default: defaultGroundWidth},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildCPWLine,
	}
}

func buildCPWLine(p Params, t *tech.Technology) (*layout.Node, error) {
	length, err := p.Float("length")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	gap, err := p.Float("gap")
	if err != nil {
		return nil, err
	}
	groundWidth, err := p.FloatOr("ground_width", defaultGroundWidth)
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	if gap <= 0 {
		return nil, p.reject("gap", gap, "must be positive")
	}
	if groundWidth <= 0 {
		return nil, p.reject("ground_width", groundWidth, "must be positive")
	}

	center, err := geometry.Rectangle(length, width)
	if err != nil {
		return nil, err
	}

	n := layout.NewNode("cpw_line")
	n.Polygons.Add(layer, center)
	n.Polygons.Add(layer, geometry.Box(0, width/2+gap, length, width/2+gap+groundWidth))
	n.Polygons.Add(layer, geometry.Box(0, -width/2-gap-groundWidth, length, -width/2-gap))
	n.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(0, 0), Width: width, Layer: layer, Orientation: 180}
	n.Ports["out"] = layout.Port{Name: "out", Position: geometry.Pt(length, 0), Width: width, Layer: layer, Orientation: 0}
	return n, nil
}

func cpwBend() *Generator {
	return &Generator{
		Type: "cpw_bend",
		Desc: "Coplanar waveguide bend with concentric ground bands.",
		Params: []ParamInfo{
			{Name: "radius", Desc: "Centerline radius"},
			{Name: "width", Desc: "Center conductor width"},
			{Name: "gap", Desc: "Gap between conductor and grounds"},
			{Name: "ground_width", Desc: "Ground plane width", Default: defaultGroundWidth},
			{Name: "angle", Desc: "Swept angle in degrees", Default: 90.0},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildCPWBend,
	}
}

func buildCPWBend(p Params, t *tech.Technology) (*layout.Node, error) {
	radius, err := p.Float("radius")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	gap, err := p.Float("gap")
	if err != nil {
		return nil, err
	}
	groundWidth, err := p.FloatOr("ground_width", defaultGroundWidth)
	if err != nil {
		return nil, err
	}
	angle, err := p.FloatOr("angle", 90)
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	if gap <= 0 {
		return nil, p.reject("gap", gap, "must be positive")
	}
	if groundWidth <= gap {
		return nil, p.reject("ground_width", groundWidth, "must exceed the gap")
	}
	if angle <= 0 {
		return nil, p.reject("angle", angle, "must be positive")
	}

	center, err := geometry.ArcBand(radius-width/2, radius+width/2, 0, angle)
	if err != nil {
		return nil, err
	}
	// The inner ground band runs from the ground edge up to the gap,
	// measured from the conductor's inner rail.
	innerGround, err := geometry.ArcBand(radius-width/2-groundWidth, radius-width/2-gap, 0, angle)
	if err != nil {
		return nil, err
	}
	outerGround, err := geometry.ArcBand(radius+width/2+gap, radius+width/2+gap+groundWidth, 0, angle)
	if err != nil {
		return nil, err
	}

	sin, cos := math.Sincos(geometry.Radians(angle))

	n := layout.NewNode("cpw_bend")
	n.Polygons.Add(layer, center)
	n.Polygons.Add(layer, innerGround)
	n.Polygons.Add(layer, outerGround)
	n.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(radius, 0), Width: width, Layer: layer, Orientation: 180}
	n.Ports["out"] = layout.Port{
		Name:        "out",
		Position:    geometry.Pt(radius*cos, radius*sin),
		Width:       width,
		Layer:       layer,
		Orientation: geometry.NormalizeAngle(angle + 90),
	}
	return n, nil
}

func cpwTaper() *Generator {
	return &Generator{
		Type: "cpw_taper",
		Desc: "Coplanar waveguide taper between two conductor widths and gaps.",
		Params: []ParamInfo{
			{Name: "length", Desc: "Taper length"},
			{Name: "width_in", Desc: "Conductor width at the input"},
			{Name: "width_out", Desc: "Conductor width at the output"},
			{Name: "gap_in", Desc: "Gap at the input"},
			{Name: "gap_out", Desc: "Gap at the output"},
			{Name: "ground_width", Desc: "Ground plane width", Default: defaultGroundWidth},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildCPWTaper,
	}
}

func buildCPWTaper(p Params, t *tech.Technology) (*layout.Node, error) {
	length, err := p.Float("length")
	if err != nil {
		return nil, err
	}
	widthIn, err := p.Float("width_in")
	if err != nil {
		return nil, err
	}
	widthOut, err := p.Float("width_out")
	if err != nil {
		return nil, err
	}
	gapIn, err := p.Float("gap_in")
	if err != nil {
		return nil, err
	}
	gapOut, err := p.Float("gap_out")
	if err != nil {
		return nil, err
	}
	groundWidth, err := p.FloatOr("ground_width", defaultGroundWidth)
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	if gapIn <= 0 {
		return nil, p.reject("gap_in", gapIn, "must be positive")
	}
	if gapOut <= 0 {
		return nil, p.reject("gap_out", gapOut, "must be positive")
	}
	if groundWidth <= 0 {
		return nil, p.reject("ground_width", groundWidth, "must be positive")
	}

	center, err := geometry.Taper(length, widthIn, widthOut)
	if err != nil {
		return nil, err
	}
	topGround := geometry.Polygon{
		{X: 0, Y: widthIn/2 + gapIn},
		{X: length, Y: widthOut/2 + gapOut},
		{X: length, Y: widthOut/2 + gapOut + groundWidth},
		{X: 0, Y: widthIn/2 + gapIn + groundWidth},
	}
	bottomGround := geometry.Polygon{
		{X: 0, Y: -widthIn/2 - gapIn - groundWidth},
		{X: length, Y: -widthOut/2 - gapOut - groundWidth},
		{X: length, Y: -widthOut/2 - gapOut},
		{X: 0, Y: -widthIn/2 - gapIn},
	}

	n := layout.NewNode("cpw_taper")
	n.Polygons.Add(layer, center)
	n.Polygons.Add(layer, topGround)
	n.Polygons.Add(layer, bottomGround)
	n.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(0, 0), Width: widthIn, Layer: layer, Orientation: 180}
	n.Ports["out"] = layout.Port{Name: "out", Position: geometry.Pt(length, 0), Width: widthOut, Layer: layer, Orientation: 0}
	return n, nil
}
