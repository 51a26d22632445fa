package generate

import (
	"math"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

func spiralInductor() *Generator {
	return &Generator{
		Type: "spiral_inductor",
		Desc: "Archimedean spiral inductor with a straight feed to the outside.",
		Params: []ParamInfo{
			{Name: "n_turns", Desc: "Number of turns, fractional allowed"},
			{Name: "width", Desc: "Trace width"},
			{Name: "spacing", Desc: "Center-to-center turn spacing"},
			{Name: "inner_radius", Desc: "Radius of the innermost turn"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"in", "out"},
		Build: buildSpiralInductor,
	}
}

func buildSpiralInductor(p Params, t *tech.Technology) (*layout.Node, error) {
	turns, err := p.Float("n_turns")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	spacing, err := p.Float("spacing")
	if err != nil {
		return nil, err
	}
	innerRadius, err := p.Float("inner_radius")
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}

	pts, err := geometry.SpiralPath(turns, spacing, innerRadius)
	if err != nil {
		return nil, err
	}
	coil, err := geometry.PathOutline(pts, width)
	if err != nil {
		return nil, err
	}

	// Straight feed from the spiral's end, tangential to the last turn,
	// long enough to clear the outermost winding.
	outerRadius := innerRadius + spacing*turns
	endAngle := math.Mod(2*math.Pi*turns, 2*math.Pi)
	sin, cos := math.Sincos(endAngle + math.Pi/2)
	end := pts[len(pts)-1]
	feedEnd := end.Add(geometry.Point{X: cos, Y: sin}.Scale(outerRadius + width))
	feed, err := geometry.Segment(end, feedEnd, width)
	if err != nil {
		return nil, err
	}

	n := layout.NewNode("spiral_inductor")
	n.Polygons.Add(layer, coil)
	n.Polygons.Add(layer, feed)
	n.Ports["in"] = layout.Port{Name: "in", Position: pts[0], Width: width, Layer: layer, Orientation: 0}
	n.Ports["out"] = layout.Port{
		Name:        "out",
		Position:    feedEnd,
		Width:       width,
		Layer:       layer,
		Orientation: geometry.NormalizeAngle(geometry.Degrees(endAngle) + 90),
	}
	return n, nil
}

func symmetricInductor() *Generator {
	return &Generator{
		Type: "symmetric_inductor",
		Desc: "Spiral inductor with an underpass bringing the inner end out on a second metal.",
		Params: []ParamInfo{
			{Name: "n_turns", Desc: "Number of turns, fractional allowed"},
			{Name: "width", Desc: "Trace width"},
			{Name: "spacing", Desc: "Center-to-center turn spacing"},
			{Name: "inner_radius", Desc: "Radius of the innermost turn"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
			{Name: "underpass_layer", Desc: "Underpass layer", Default: tech.RoleMetal2},
		},
		Ports: []string{"p1", "p2"},
		Build: buildSymmetricInductor,
	}
}

func buildSymmetricInductor(p Params, t *tech.Technology) (*layout.Node, error) {
	turns, err := p.Float("n_turns")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	spacing, err := p.Float("spacing")
	if err != nil {
		return nil, err
	}
	innerRadius, err := p.Float("inner_radius")
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	underpassLayer, err := p.Layer("underpass_layer", tech.RoleMetal2, t)
	if err != nil {
		return nil, err
	}

	pts, err := geometry.SpiralPath(turns, spacing, innerRadius)
	if err != nil {
		return nil, err
	}
	coil, err := geometry.PathOutline(pts, width)
	if err != nil {
		return nil, err
	}

	// The underpass runs along the -x axis, from outside the outermost
	// winding back under the coil to the inner turn.
	outerRadius := innerRadius + spacing*turns
	underpass, err := geometry.Segment(
		geometry.Pt(-outerRadius-width, 0),
		geometry.Pt(-innerRadius, 0),
		width,
	)
	if err != nil {
		return nil, err
	}

	n := layout.NewNode("symmetric_inductor")
	n.Polygons.Add(layer, coil)
	n.Polygons.Add(underpassLayer, underpass)
	n.Ports["p1"] = layout.Port{Name: "p1", Position: pts[0], Width: width, Layer: layer, Orientation: 0}
	n.Ports["p2"] = layout.Port{Name: "p2", Position: geometry.Pt(-outerRadius-width, 0), Width: width, Layer: underpassLayer, Orientation: 180}
	return n, nil
}

func solenoidInductor() *Generator {
	return &Generator{
		Type: "solenoid_inductor",
		Desc: "Solenoid inductor: alternating segments on two metals joined by vias.",
		Params: []ParamInfo{
			{Name: "n_turns", Desc: "Number of turns"},
			{Name: "width", Desc: "Trace width"},
			{Name: "length", Desc: "Total solenoid length"},
			{Name: "diameter", Desc: "Winding diameter"},
			{Name: "via_size", Desc: "Via square side", Default: 1.0},
			{Name: "top_layer", Desc: "Top winding layer", Default: tech.RoleMetal1},
			{Name: "bottom_layer", Desc: "Bottom winding layer", Default: tech.RoleMetal2},
			{Name: "via_layer", Desc: "Via layer", Default: tech.RoleVia12},
		},
		Ports: []string{"p1", "p2"},
		Build: buildSolenoidInductor,
	}
}

func buildSolenoidInductor(p Params, t *tech.Technology) (*layout.Node, error) {
	nTurns, err := p.Int("n_turns")
	if err != nil {
		return nil, err
	}
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	length, err := p.Float("length")
	if err != nil {
		return nil, err
	}
	diameter, err := p.Float("diameter")
	if err != nil {
		return nil, err
	}
	viaSize, err := p.FloatOr("via_size", 1)
	if err != nil {
		return nil, err
	}
	topLayer, err := p.Layer("top_layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	bottomLayer, err := p.Layer("bottom_layer", tech.RoleMetal2, t)
	if err != nil {
		return nil, err
	}
	viaLayer, err := p.Layer("via_layer", tech.RoleVia12, t)
	if err != nil {
		return nil, err
	}
	if nTurns < 1 {
		return nil, p.reject("n_turns", float64(nTurns), "must be at least 1")
	}
	if width <= 0 {
		return nil, p.reject("width", width, "must be positive")
	}
	if length <= 0 {
		return nil, p.reject("length", length, "must be positive")
	}
	if diameter <= 0 {
		return nil, p.reject("diameter", diameter, "must be positive")
	}
	if viaSize <= 0 {
		return nil, p.reject("via_size", viaSize, "must be positive")
	}

	n := layout.NewNode("solenoid_inductor")
	segment := length / float64(nTurns)
	for i := range nTurns {
		x0 := float64(i) * segment
		x1 := float64(i+1) * segment

		// Odd turns swap sides so consecutive segments zigzag across
		// the winding diameter.
		topY, bottomY := -diameter/2, diameter/2
		if i%2 == 1 {
			topY, bottomY = diameter/2, -diameter/2
		}
		n.Polygons.Add(topLayer, geometry.Box(x0, topY-width/2, x1, topY+width/2))
		n.Polygons.Add(bottomLayer, geometry.Box(x0, bottomY-width/2, x1, bottomY+width/2))

		if i < nTurns-1 {
			n.Polygons.Add(viaLayer, geometry.Box(x1-viaSize/2, topY-viaSize/2, x1+viaSize/2, topY+viaSize/2))
		}
	}

	p1Y := -diameter / 2
	if nTurns%2 == 0 {
		p1Y = diameter / 2
	}
	p2Y := -diameter / 2
	if nTurns%2 == 1 {
		p2Y = diameter / 2
	}
	n.Ports["p1"] = layout.Port{Name: "p1", Position: geometry.Pt(0, p1Y), Width: width, Layer: bottomLayer, Orientation: 180}
	n.Ports["p2"] = layout.Port{Name: "p2", Position: geometry.Pt(length, p2Y), Width: width, Layer: topLayer, Orientation: 0}
	return n, nil
}
