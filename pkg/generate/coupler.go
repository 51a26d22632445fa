package generate

import (
	"fmt"
	"math"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

func branchLineCoupler() *Generator {
	return &Generator{
		Type: "branch_line_coupler",
		Desc: "Branch-line coupler (90 degree hybrid): four lines forming a square.",
		Params: []ParamInfo{
			{Name: "size", Desc: "Side length of the square"},
			{Name: "width", Desc: "Transmission line width"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"p1", "p2", "p3", "p4"},
		Build: buildBranchLineCoupler,
	}
}

func buildBranchLineCoupler(p Params, t *tech.Technology) (*layout.Node, error) {
	size, err := p.Float("size")
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
	if size <= 0 {
		return nil, p.reject("size", size, "must be positive")
	}
	if width <= 0 {
		return nil, p.reject("width", width, "must be positive")
	}

	n := layout.NewNode("branch_line_coupler")
	n.Polygons.Add(layer, geometry.Box(0, size-width/2, size, size+width/2))
	n.Polygons.Add(layer, geometry.Box(size-width/2, 0, size+width/2, size))
	n.Polygons.Add(layer, geometry.Box(0, -width/2, size, width/2))
	n.Polygons.Add(layer, geometry.Box(-width/2, 0, width/2, size))
	n.Ports["p1"] = layout.Port{Name: "p1", Position: geometry.Pt(-width/2, 0), Width: width, Layer: layer, Orientation: 180}
	n.Ports["p2"] = layout.Port{Name: "p2", Position: geometry.Pt(size, -width/2), Width: width, Layer: layer, Orientation: 270}
	n.Ports["p3"] = layout.Port{Name: "p3", Position: geometry.Pt(size+width/2, size), Width: width, Layer: layer, Orientation: 0}
	n.Ports["p4"] = layout.Port{Name: "p4", Position: geometry.Pt(0, size+width/2), Width: width, Layer: layer, Orientation: 90}
	return n, nil
}

func ratRaceCoupler() *Generator {
	return &Generator{
		Type: "rat_race_coupler",
		Desc: "Rat-race coupler (180 degree hybrid): a ring with four radial stubs.",
		Params: []ParamInfo{
			{Name: "radius", Desc: "Ring centerline radius"},
			{Name: "width", Desc: "Transmission line width"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"p1", "p2", "p3", "p4"},
		Build: buildRatRaceCoupler,
	}
}

func buildRatRaceCoupler(p Params, t *tech.Technology) (*layout.Node, error) {
	radius, err := p.Float("radius")
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
	if radius <= 0 {
		return nil, p.reject("radius", radius, "must be positive")
	}

	ring, err := geometry.Ring(radius-width/2, radius+width/2)
	if err != nil {
		return nil, err
	}

	n := layout.NewNode("rat_race_coupler")
	n.Polygons.Add(layer, ring)

	// Radial stubs at the four port angles, half a radius long.
	for i, deg := range []float64{0, 90, 180, 270} {
		sin, cos := math.Sincos(geometry.Radians(deg))
		start := geometry.Pt(radius*cos, radius*sin)
		end := geometry.Pt(1.5*radius*cos, 1.5*radius*sin)
		stub, err := geometry.Segment(start, end, width)
		if err != nil {
			return nil, err
		}
		n.Polygons.Add(layer, stub)

		name := fmt.Sprintf("p%d", i+1)
		n.Ports[name] = layout.Port{Name: name, Position: end, Width: width, Layer: layer, Orientation: deg}
	}
	return n, nil
}
