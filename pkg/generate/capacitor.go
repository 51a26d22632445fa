package generate

import (
	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Bottom plate overhang of the MIM capacitor. The contact ports sit on
// this margin.
const mimBottomMargin = 1.0

func mimCapacitor() *Generator {
	return &Generator{
		Type: "mim_capacitor",
		Desc: "Metal-insulator-metal capacitor: stacked plates with a dielectric between.",
		Params: []ParamInfo{
			{Name: "width", Desc: "Plate width"},
			{Name: "length", Desc: "Plate length"},
			{Name: "top_layer", Desc: "Top plate layer", Default: tech.RoleMetal1},
			{Name: "bottom_layer", Desc: "Bottom plate layer", Default: tech.RoleMetal2},
			{Name: "dielectric_layer", Desc: "Dielectric layer", Default: tech.RoleDielectric},
		},
		Ports: []string{"p1", "p2"},
		Build: buildMIMCapacitor,
	}
}

func buildMIMCapacitor(p Params, t *tech.Technology) (*layout.Node, error) {
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	length, err := p.Float("length")
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
	dielectricLayer, err := p.Layer("dielectric_layer", tech.RoleDielectric, t)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, p.reject("width", width, "must be positive")
	}
	if length <= 0 {
		return nil, p.reject("length", length, "must be positive")
	}

	n := layout.NewNode("mim_capacitor")
	n.Polygons.Add(bottomLayer, geometry.Box(
		-mimBottomMargin, -width/2-mimBottomMargin,
		length+mimBottomMargin, width/2+mimBottomMargin,
	))
	n.Polygons.Add(dielectricLayer, geometry.Box(0, -width/2, length, width/2))
	n.Polygons.Add(topLayer, geometry.Box(0, -width/2, length, width/2))
	n.Ports["p1"] = layout.Port{
		Name:        "p1",
		Position:    geometry.Pt(length/2, width/2+mimBottomMargin),
		Width:       width / 4,
		Layer:       topLayer,
		Orientation: 90,
	}
	n.Ports["p2"] = layout.Port{
		Name:        "p2",
		Position:    geometry.Pt(length/2, -width/2-mimBottomMargin),
		Width:       width / 4,
		Layer:       bottomLayer,
		Orientation: 270,
	}
	return n, nil
}

func interdigitatedCapacitor() *Generator {
	return &Generator{
		Type: "interdigitated_capacitor",
		Desc: "Interdigitated capacitor: two bus bars with interleaved fingers.",
		Params: []ParamInfo{
			{Name: "n_fingers", Desc: "Number of fingers"},
			{Name: "finger_length", Desc: "Finger length"},
			{Name: "finger_width", Desc: "Finger width"},
			{Name: "finger_spacing", Desc: "Spacing between fingers"},
			{Name: "layer", Desc: "Conductor layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"p1", "p2"},
		Build: buildInterdigitatedCapacitor,
	}
}

func buildInterdigitatedCapacitor(p Params, t *tech.Technology) (*layout.Node, error) {
	nFingers, err := p.Int("n_fingers")
	if err != nil {
		return nil, err
	}
	fingerLength, err := p.Float("finger_length")
	if err != nil {
		return nil, err
	}
	fingerWidth, err := p.Float("finger_width")
	if err != nil {
		return nil, err
	}
	fingerSpacing, err := p.Float("finger_spacing")
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	if nFingers < 1 {
		return nil, p.reject("n_fingers", float64(nFingers), "must be at least 1")
	}
	if fingerLength <= 0 {
		return nil, p.reject("finger_length", fingerLength, "must be positive")
	}
	if fingerWidth <= 0 {
		return nil, p.reject("finger_width", fingerWidth, "must be positive")
	}
	if fingerSpacing <= 0 {
		return nil, p.reject("finger_spacing", fingerSpacing, "must be positive")
	}

	totalWidth := float64(nFingers+1)*fingerSpacing + float64(nFingers)*fingerWidth

	n := layout.NewNode("interdigitated_capacitor")
	n.Polygons.Add(layer, geometry.Box(-fingerWidth, -totalWidth/2, 0, totalWidth/2))
	n.Polygons.Add(layer, geometry.Box(fingerLength, -totalWidth/2, fingerLength+fingerWidth, totalWidth/2))
	// Every finger spans the full gap between the buses.
	for i := range nFingers {
		y := -totalWidth/2 + fingerSpacing + float64(i)*(fingerWidth+fingerSpacing)
		n.Polygons.Add(layer, geometry.Box(0, y, fingerLength, y+fingerWidth))
	}
	n.Ports["p1"] = layout.Port{Name: "p1", Position: geometry.Pt(-fingerWidth, 0), Width: fingerWidth, Layer: layer, Orientation: 180}
	n.Ports["p2"] = layout.Port{Name: "p2", Position: geometry.Pt(fingerLength+fingerWidth, 0), Width: fingerWidth, Layer: layer, Orientation: 0}
	return n, nil
}

func parallelPlateCapacitor() *Generator {
	return &Generator{
		Type: "parallel_plate_capacitor",
		Desc: "Two plates side by side separated by a gap, on one layer.",
		Params: []ParamInfo{
			{Name: "width", Desc: "Plate width"},
			{Name: "length", Desc: "Plate length"},
			{Name: "plate_spacing", Desc: "Spacing between the plates"},
			{Name: "layer", Desc: "Plate layer", Default: tech.RoleMetal1},
		},
		Ports: []string{"p1", "p2"},
		Build: buildParallelPlateCapacitor,
	}
}

func buildParallelPlateCapacitor(p Params, t *tech.Technology) (*layout.Node, error) {
	width, err := p.Float("width")
	if err != nil {
		return nil, err
	}
	length, err := p.Float("length")
	if err != nil {
		return nil, err
	}
	plateSpacing, err := p.Float("plate_spacing")
	if err != nil {
		return nil, err
	}
	layer, err := p.Layer("layer", tech.RoleMetal1, t)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, p.reject("width", width, "must be positive")
	}
	if length <= 0 {
		return nil, p.reject("length", length, "must be positive")
	}
	if plateSpacing <= 0 {
		return nil, p.reject("plate_spacing", plateSpacing, "must be positive")
	}

	n := layout.NewNode("parallel_plate_capacitor")
	n.Polygons.Add(layer, geometry.Box(0, plateSpacing/2, length, plateSpacing/2+width))
	n.Polygons.Add(layer, geometry.Box(0, -plateSpacing/2-width, length, -plateSpacing/2))
	n.Ports["p1"] = layout.Port{
		Name:        "p1",
		Position:    geometry.Pt(length/2, plateSpacing/2+width),
		Width:       width / 2,
		Layer:       layer,
		Orientation: 90,
	}
	n.Ports["p2"] = layout.Port{
		Name:        "p2",
		Position:    geometry.Pt(length/2, -plateSpacing/2-width),
		Width:       width / 2,
		Layer:       layer,
		Orientation: 270,
	}
	return n, nil
}
