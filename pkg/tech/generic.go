package tech

// Role names used by the built-in generators. Technologies intended
// for the stock component library should map at least these.
const (
	RoleMetal1     = "metal1"
	RoleMetal2     = "metal2"
	RoleMetal3     = "metal3"
	RoleVia12      = "via12"
	RoleVia23      = "via23"
	RoleResistor   = "resistor"
	RoleDielectric = "dielectric"
	RoleSubstrate  = "substrate"
	RoleText       = "text"
	RoleDrawing    = "drawing"
)

// Generic returns the built-in generic technology: a three-metal stack
// with via, resistor, and dielectric layers, and conservative RF design
// rules. It is registered under the name "generic" and is the default
// for designs that do not name a technology.
func Generic() *Technology {
	layers := map[string]Layer{
		RoleMetal1:     {Name: RoleMetal1, ID: LayerID{Layer: 1}, Description: "Metal 1 layer"},
		RoleMetal2:     {Name: RoleMetal2, ID: LayerID{Layer: 2}, Description: "Metal 2 layer"},
		RoleMetal3:     {Name: RoleMetal3, ID: LayerID{Layer: 3}, Description: "Metal 3 layer"},
		RoleVia12:      {Name: RoleVia12, ID: LayerID{Layer: 4}, Description: "Via between Metal 1 and Metal 2"},
		RoleVia23:      {Name: RoleVia23, ID: LayerID{Layer: 5}, Description: "Via between Metal 2 and Metal 3"},
		RoleResistor:   {Name: RoleResistor, ID: LayerID{Layer: 6}, Description: "Resistor layer"},
		RoleDielectric: {Name: RoleDielectric, ID: LayerID{Layer: 7}, Description: "Dielectric layer"},
		RoleSubstrate:  {Name: RoleSubstrate, ID: LayerID{Layer: 8}, Description: "Substrate layer"},
		RoleText:       {Name: RoleText, ID: LayerID{Layer: 9}, Description: "Text layer"},
		RoleDrawing:    {Name: RoleDrawing, ID: LayerID{Layer: 10}, Description: "Drawing layer"},
	}

	rules := map[string]float64{
		"min_width_metal1": 2.0,
		"min_width_metal2": 2.0,
		"min_width_metal3": 2.0,
		"min_width_via12":  2.0,
		"min_width_via23":  2.0,

		"min_spacing_metal1": 2.0,
		"min_spacing_metal2": 2.0,
		"min_spacing_metal3": 2.0,
		"min_spacing_via12":  2.0,
		"min_spacing_via23":  2.0,

		"min_transmission_line_width":   5.0,
		"min_transmission_line_spacing": 5.0,
		"min_inductor_width":            5.0,
		"min_inductor_spacing":          5.0,
		"min_capacitor_width":           5.0,
		"min_capacitor_spacing":         5.0,
	}

	return &Technology{
		Name:        "generic",
		Description: "Generic technology with basic layers for RF designs",
		Layers:      layers,
		Rules:       rules,
	}
}
