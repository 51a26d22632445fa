package generate

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

func pointAlmostEqual(a, b geometry.Point) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

// Layer IDs of the generic technology, for expectations.
var (
	metal1     = tech.LayerID{Layer: 1}
	metal2     = tech.LayerID{Layer: 2}
	via12      = tech.LayerID{Layer: 4}
	resistor   = tech.LayerID{Layer: 6}
	dielectric = tech.LayerID{Layer: 7}
)

func buildType(t *testing.T, typ string, params design.Params) *layout.Node {
	t.Helper()
	g, err := Lookup(typ)
	if err != nil {
		t.Fatalf("Lookup(%s) error = %v", typ, err)
	}
	node, err := g.Build(newParams(typ, params), tech.Generic())
	if err != nil {
		t.Fatalf("Build(%s) error = %v", typ, err)
	}
	return node
}

func checkPort(t *testing.T, node *layout.Node, name string, pos geometry.Point, width float64, layer tech.LayerID, orientation float64) {
	t.Helper()
	port, ok := node.Ports[name]
	if !ok {
		t.Fatalf("node %s has no port %q", node.Name, name)
	}
	if !pointAlmostEqual(port.Position, pos) {
		t.Errorf("port %s position = %v, want %v", name, port.Position, pos)
	}
	if !almostEqual(port.Width, width) {
		t.Errorf("port %s width = %v, want %v", name, port.Width, width)
	}
	if port.Layer != layer {
		t.Errorf("port %s layer = %v, want %v", name, port.Layer, layer)
	}
	if !almostEqual(port.Orientation, orientation) {
		t.Errorf("port %s orientation = %v, want %v", name, port.Orientation, orientation)
	}
}

var allTypes = []string{
	"branch_line_coupler",
	"cpw_bend",
	"cpw_line",
	"cpw_taper",
	"curved_microstrip_line",
	"interdigitated_capacitor",
	"microstrip_line",
	"mim_capacitor",
	"parallel_plate_capacitor",
	"rat_race_coupler",
	"solenoid_inductor",
	"spiral_inductor",
	"symmetric_inductor",
	"tapered_microstrip_line",
	"wilkinson_divider",
}

func TestTypes(t *testing.T) {
	got := Types()
	if !slices.Equal(got, allTypes) {
		t.Errorf("Types() = %v, want %v", got, allTypes)
	}
}

func TestLookup(t *testing.T) {
	g, err := Lookup("microstrip_line")
	if err != nil {
		t.Fatalf("Lookup(microstrip_line) error = %v", err)
	}
	if g.Type != "microstrip_line" {
		t.Errorf("Lookup() type = %q, want microstrip_line", g.Type)
	}
	if g.Build == nil {
		t.Error("Lookup() returned generator without Build")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("waveguide")
	var uerr *UnknownTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("Lookup(waveguide) error = %v, want *UnknownTypeError", err)
	}
	if uerr.Type != "waveguide" {
		t.Errorf("UnknownTypeError.Type = %q, want waveguide", uerr.Type)
	}
	if !slices.Equal(uerr.Known, allTypes) {
		t.Errorf("UnknownTypeError.Known = %v, want all registered types", uerr.Known)
	}
}

func TestAll(t *testing.T) {
	gens := All()
	if len(gens) != len(allTypes) {
		t.Fatalf("All() returned %d generators, want %d", len(gens), len(allTypes))
	}
	for i, g := range gens {
		if g.Type != allTypes[i] {
			t.Errorf("All()[%d].Type = %q, want %q", i, g.Type, allTypes[i])
		}
		if g.Desc == "" {
			t.Errorf("All()[%d] (%s) has no description", i, g.Type)
		}
		if len(g.Ports) == 0 {
			t.Errorf("All()[%d] (%s) declares no ports", i, g.Type)
		}
	}
}

func TestComponent(t *testing.T) {
	c := &design.Component{
		Name: "feed",
		Type: "microstrip_line",
		Parameters: design.Params{
			"length": 100.0,
			"width":  5.0,
		},
	}
	node, err := Component(c, tech.Generic())
	if err != nil {
		t.Fatalf("Component() error = %v", err)
	}
	if node.Name != "feed" {
		t.Errorf("Component() node name = %q, want feed", node.Name)
	}
	for _, want := range []string{"in", "out"} {
		if _, ok := node.Ports[want]; !ok {
			t.Errorf("Component() node missing port %q", want)
		}
	}
}

func TestComponentUnknownType(t *testing.T) {
	c := &design.Component{Name: "x1", Type: "waveguide"}
	_, err := Component(c, tech.Generic())
	var uerr *UnknownTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("Component() error = %v, want *UnknownTypeError", err)
	}
	if !strings.Contains(err.Error(), "component x1") {
		t.Errorf("Component() error = %q, want component name in message", err)
	}
}

func TestComponentMissingParameter(t *testing.T) {
	c := &design.Component{
		Name:       "feed",
		Type:       "microstrip_line",
		Parameters: design.Params{"width": 5.0},
	}
	_, err := Component(c, tech.Generic())
	var merr *MissingParameterError
	if !errors.As(err, &merr) {
		t.Fatalf("Component() error = %v, want *MissingParameterError", err)
	}
	if merr.Type != "microstrip_line" || merr.Param != "length" {
		t.Errorf("MissingParameterError = %s/%s, want microstrip_line/length", merr.Type, merr.Param)
	}
}

func TestParamsFloat(t *testing.T) {
	p := newParams("test_type", design.Params{"a": 2.5, "b": 3, "s": "nope"})

	if v, err := p.Float("a"); err != nil || v != 2.5 {
		t.Errorf("Float(a) = %v, %v, want 2.5, nil", v, err)
	}
	if v, err := p.Float("b"); err != nil || v != 3 {
		t.Errorf("Float(b) = %v, %v, want 3, nil", v, err)
	}

	_, err := p.Float("s")
	var ierr *InvalidParameterError
	if !errors.As(err, &ierr) {
		t.Fatalf("Float(s) error = %v, want *InvalidParameterError", err)
	}
	if ierr.Param != "s" || ierr.Want != "a number" {
		t.Errorf("InvalidParameterError = %+v, want param s wanting a number", ierr)
	}

	if _, err := p.Float("missing"); err == nil {
		t.Error("Float(missing) expected error, got nil")
	}
}

func TestParamsFloatOr(t *testing.T) {
	p := newParams("test_type", design.Params{"set": 42.0})

	if v, err := p.FloatOr("set", 7); err != nil || v != 42 {
		t.Errorf("FloatOr(set, 7) = %v, %v, want 42, nil", v, err)
	}
	if v, err := p.FloatOr("unset", 7); err != nil || v != 7 {
		t.Errorf("FloatOr(unset, 7) = %v, %v, want 7, nil", v, err)
	}
}

func TestParamsInt(t *testing.T) {
	p := newParams("test_type", design.Params{"n": 4, "f": 2.5})

	if v, err := p.Int("n"); err != nil || v != 4 {
		t.Errorf("Int(n) = %v, %v, want 4, nil", v, err)
	}
	if _, err := p.Int("f"); err == nil {
		t.Error("Int(f) expected error for fractional value, got nil")
	}
	var merr *MissingParameterError
	if _, err := p.Int("missing"); !errors.As(err, &merr) {
		t.Errorf("Int(missing) error = %v, want *MissingParameterError", err)
	}
}

func TestParamsLayer(t *testing.T) {
	generic := tech.Generic()
	p := newParams("test_type", design.Params{
		"role":    "metal2",
		"pair":    []any{5, 1},
		"bad":     42.0,
		"unknown": "moon_metal",
	})

	got, err := p.Layer("absent", tech.RoleMetal1, generic)
	if err != nil || got != (tech.LayerID{Layer: 1, Datatype: 0}) {
		t.Errorf("Layer(absent) = %v, %v, want 1/0, nil", got, err)
	}
	got, err = p.Layer("role", tech.RoleMetal1, generic)
	if err != nil || got != (tech.LayerID{Layer: 2, Datatype: 0}) {
		t.Errorf("Layer(role) = %v, %v, want 2/0, nil", got, err)
	}
	got, err = p.Layer("pair", tech.RoleMetal1, generic)
	if err != nil || got != (tech.LayerID{Layer: 5, Datatype: 1}) {
		t.Errorf("Layer(pair) = %v, %v, want 5/1, nil", got, err)
	}

	var ierr *InvalidParameterError
	if _, err := p.Layer("bad", tech.RoleMetal1, generic); !errors.As(err, &ierr) {
		t.Errorf("Layer(bad) error = %v, want *InvalidParameterError", err)
	}
	var uerr *tech.UnmappedLayerError
	if _, err := p.Layer("unknown", tech.RoleMetal1, generic); !errors.As(err, &uerr) {
		t.Errorf("Layer(unknown) error = %v, want *tech.UnmappedLayerError", err)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&MissingParameterError{Type: "cpw_line", Param: "gap"},
			`cpw_line: missing required parameter "gap"`,
		},
		{
			&InvalidParameterError{Type: "cpw_line", Param: "gap", Value: "wide", Want: "a number"},
			`cpw_line: parameter "gap" must be a number (got wide)`,
		},
		{
			&UnknownTypeError{Type: "coax", Known: []string{"cpw_line", "microstrip_line"}},
			`unknown component type "coax" (known types: cpw_line, microstrip_line)`,
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

// validParams holds a known-good parameter set per component type, used
// by the contract tests below.
var validParams = map[string]design.Params{
	"microstrip_line":          {"length": 100.0, "width": 5.0},
	"tapered_microstrip_line":  {"length": 50.0, "width_in": 10.0, "width_out": 5.0},
	"curved_microstrip_line":   {"radius": 50.0, "width": 5.0, "angle": 90.0},
	"cpw_line":                 {"length": 80.0, "width": 10.0, "gap": 6.0},
	"cpw_bend":                 {"radius": 60.0, "width": 10.0, "gap": 6.0},
	"cpw_taper":                {"length": 40.0, "width_in": 10.0, "width_out": 20.0, "gap_in": 6.0, "gap_out": 12.0},
	"spiral_inductor":          {"n_turns": 3.5, "width": 2.0, "spacing": 8.0, "inner_radius": 20.0},
	"symmetric_inductor":       {"n_turns": 3.0, "width": 2.0, "spacing": 8.0, "inner_radius": 20.0},
	"solenoid_inductor":        {"n_turns": 3, "width": 2.0, "length": 30.0, "diameter": 10.0},
	"mim_capacitor":            {"width": 10.0, "length": 20.0},
	"interdigitated_capacitor": {"n_fingers": 4, "finger_length": 30.0, "finger_width": 2.0, "finger_spacing": 1.0},
	"parallel_plate_capacitor": {"width": 5.0, "length": 20.0, "plate_spacing": 2.0},
	"wilkinson_divider":        {"radius": 100.0, "width": 5.0, "isolation_resistor_width": 2.0, "isolation_resistor_length": 10.0},
	"branch_line_coupler":      {"size": 50.0, "width": 5.0},
	"rat_race_coupler":         {"radius": 40.0, "width": 4.0},
}

// Every declared port must sit on the boundary of the emitted geometry.
// Ports are connection points; a port floating off its component cannot
// mate with a neighbor without overlap or gap.
func TestPortsLieOnGeometryBoundary(t *testing.T) {
	const tol = 1e-6
	generic := tech.Generic()

	for _, typ := range Types() {
		t.Run(typ, func(t *testing.T) {
			params, ok := validParams[typ]
			if !ok {
				t.Fatalf("no valid parameter set for %s", typ)
			}
			g, err := Lookup(typ)
			if err != nil {
				t.Fatalf("Lookup(%s) error = %v", typ, err)
			}
			node, err := g.Build(newParams(typ, params), generic)
			if err != nil {
				t.Fatalf("Build(%s) error = %v", typ, err)
			}
			if node.Polygons.Count() == 0 {
				t.Fatalf("Build(%s) emitted no polygons", typ)
			}

			for _, name := range node.Ports.Names() {
				port := node.Ports[name]
				found := false
				for _, layer := range node.Polygons.Layers() {
					for _, poly := range node.Polygons[layer] {
						if poly.OnBoundary(port.Position, tol) {
							found = true
						}
					}
				}
				if !found {
					t.Errorf("%s port %q at %v is not on any polygon boundary", typ, name, port.Position)
				}
			}
		})
	}
}

// Declared port lists must match what Build actually produces.
func TestDeclaredPortsMatchBuilt(t *testing.T) {
	generic := tech.Generic()
	for _, g := range All() {
		node, err := g.Build(newParams(g.Type, validParams[g.Type]), generic)
		if err != nil {
			t.Fatalf("Build(%s) error = %v", g.Type, err)
		}
		declared := slices.Clone(g.Ports)
		slices.Sort(declared)
		if got := node.Ports.Names(); !slices.Equal(got, declared) {
			t.Errorf("%s built ports %v, declared %v", g.Type, got, declared)
		}
	}
}

func TestBuildIgnoresExtraParameters(t *testing.T) {
	params := design.Params{"length": 100.0, "width": 5.0, "color": "blue", "q_factor": 50.0}
	g, _ := Lookup("microstrip_line")
	if _, err := g.Build(newParams(g.Type, params), tech.Generic()); err != nil {
		t.Errorf("Build() with extra parameters error = %v, want nil", err)
	}
}
