package generate

import (
	"math"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

func microstripLine() *Generator {
	return &Generator{
		Type: "microstrip_line",
		Desc: "Straight microstrip transmission line section.",
		Params: []ParamInfo{
			{Name: "length", Desc: "Line length"},
			{Name: "width", Desc: "Trace width"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildMicrostripLine,
	}
}

func buildMicrostripLine(p Params, t *tech.Technology) (*layout.Node, error) {
	length, err := p.Float("length")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}

	body, err := geometry.Rectangle(length, width)
	if err != nil {
		return nil, err
	}

	n := layout.NewNode("microstrip_line")
	n.Polygons.Add(layer, body)
	n.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(0, 0), Width: width, Layer: layer, Orientation: 180}
	n.Ports["out"] = layout.Port{Name: "out", Position: geometry.Pt(length, 0), Width: width, Layer: layer, Orientation: 0}
	return n, nil
}

func taperedMicrostripLine() *Generator {
	return &Generator{
		Type: "tapered_microstrip_line",
		Desc: "Microstrip line tapering linearly between two widths.",
		Params: []ParamInfo{
			{Name: "length", Desc: "Taper length"},
			{Name: "width_in", Desc: "Width at the input"},
			{Name: "width_out", Desc: "Width at the output"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildTaperedMicrostripLine,
	}
}

func buildTaperedMicrostripLine(p Params, t *tech.Technology) (*layout.Node, error) {
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
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}

	body, err := geometry.Taper(length, widthIn, widthOut)
	if err != nil {
		return nil, err
	}

	n := layout.NewNode("tapered_microstrip_line")
	n.Polygons.Add(layer, body)
	n.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(0, 0), Width: widthIn, Layer: layer, Orientation: 180}
	n.Ports["out"] = layout.Port{Name: "out", Position: geometry.Pt(length, 0), Width: widthOut, Layer: layer, Orientation: 0}
	return n, nil
}

func curvedMicrostripLine() *Generator {
	return &Generator{
		Type: "curved_microstrip_line",
		Desc: "Circular microstrip bend sweeping counter-clockwise from the +x axis.",
		Params: []ParamInfo{
			{Name: "radius", Desc: "Centerline radius"},
			{Name: "width", Desc: "Trace width"},
			{Name: "angle", Desc: "Swept angle in degrees", Default: 90.0},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildCurvedMicrostripLine,
	}
}

func buildCurvedMicrostripLine(p Params, t *tech.Technology) (*layout.Node, error) {
	radius, err := p.Float("radius")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
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
	if angle <= 0 {
		return nil, p.reject("angle", angle, "must be positive")
	}

	band, err := geometry.ArcBand(radius-width/2, radius+width/2, 0, angle)
	if err != nil {
		return nil, err
	}

	sin, cos := math.Sincos(geometry.Radians(angle))

	n := layout.NewNode("curved_microstrip_line")
	n.Polygons.Add(layer, band)
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
