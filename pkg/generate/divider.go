package generate

import (
	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Quarter-wave arcs of the divider are sampled with a fixed count
// rather than per-degree, so both halves mesh vertex for vertex.
const dividerArcPoints = 50

func wilkinsonDivider() *Generator {
	return &Generator{
		Type: "wilkinson_divider",
		Desc: "Wilkinson power divider: two quarter-wave arcs with an isolation resistor.",
		Params: []ParamInfo{
			{Name: "radius", Desc: "Radius of the quarter-wave arcs"},
			{Name: "width", Desc: "Transmission line width"},
			{Name: "isolation_resistor_width", Desc: "Isolation resistor width"},
			{Name: "isolation_resistor_length", Desc: "Isolation resistor length"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
			{Name: "resistor_layer", Desc: "Resistor layer", Default: tech.RoleResistor},
		},
		Ports: []string{"in", "out1", "out2"},
		Build: buildWilkinsonDivider,
	}
}

func buildWilkinsonDivider(p Params, t *tech.Technology) (*layout.Node, error) {
	radius, err := p.Float("radius")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	resistorWidth, err := p.Float("isolation_resistor_width")
	if err != nil {
		return nil, err
	}
	resistorLength, err := p.Float("isolation_resistor_length")
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	resistorLayer, err := p.Layer("resistor_layer", tech.RoleResistor, t)
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, p.reject("radius", radius, "must be positive")
	}
	if width <= 0 {
		return nil, p.reject("width", width, "must be positive")
	}
	if resistorWidth <= 0 {
		return nil, p.reject("isolation_resistor_width", resistorWidth, "must be positive")
	}
	if resistorLength <= 0 {
		return nil, p.reject("isolation_resistor_length", resistorLength, "must be positive")
	}

	topArc, err := geometry.ArcBandN(radius-width/2, radius+width/2, 0, 90, dividerArcPoints)
	if err != nil {
		return nil, err
	}
	bottomArc, err := geometry.ArcBandN(radius-width/2, radius+width/2, -90, 0, dividerArcPoints)
	if err != nil {
		return nil, err
	}

	stub := radius / 2

	n := layout.NewNode("wilkinson_divider")
	n.Polygons.Add(layer, geometry.Box(-stub, -width/2, 0, width/2))
	n.Polygons.Add(layer, topArc)
	n.Polygons.Add(layer, bottomArc)
	n.Polygons.Add(layer, geometry.Box(radius, radius-width/2, radius+stub, radius+width/2))
	n.Polygons.Add(layer, geometry.Box(radius, -radius-width/2, radius+stub, -radius+width/2))
	n.Polygons.Add(resistorLayer, geometry.Box(
		radius, -radius+resistorWidth/2,
		radius+resistorLength, radius-resistorWidth/2,
	))

	// Divider outputs drive independent loads, so both allow fan-out.
	n.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(-stub, 0), Width: width, Layer: layer, Orientation: 180}
	n.Ports["out1"] = layout.Port{
		Name:        "out1",
		Position:    geometry.Pt(radius+stub, radius),
		Width:       width,
		Layer:       layer,
		Orientation: 0,
		Fanout:      true,
	}
	n.Ports["out2"] = layout.Port{
		Name:        "out2",
		Position:    geometry.Pt(radius+stub, -radius),
		Width:       width,
		Layer:       layer,
		Orientation: 0,
		Fanout:      true,
	}
	return n, nil
}
