package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/geometry"
)

func lineCell(name string) *Node {
	n := NewNode(name)
	n.Polygons.Add(metal1, geometry.Box(0, -2.5, 100, 2.5))
	n.Ports["in"] = Port{Name: "in", Position: geometry.Pt(0, 0), Width: 5, Layer: metal1, Orientation: 180}
	n.Ports["out"] = Port{Name: "out", Position: geometry.Pt(100, 0), Width: 5, Layer: metal1, Orientation: 0}
	return n
}

func splitterCell(name string) *Node {
	n := lineCell(name)
	out := n.Ports["out"]
	out.Fanout = true
	n.Ports["out"] = out
	return n
}

func TestAssemble(t *testing.T) {
	d := &design.Design{
		Name:       "test_filter",
		Technology: "generic",
		Units:      "um",
		Components: []*design.Component{
			{Name: "line1", Type: "microstrip_line"},
			{Name: "line2", Type: "microstrip_line", Connections: []design.Connection{
				{Port: "in", Target: "line1", TargetPort: "out"},
			}},
		},
	}
	cells := map[string]*Node{"line1": lineCell("line1"), "line2": lineCell("line2")}
	placements := map[string]geometry.Placement{
		"line1": {},
		"line2": {Position: geometry.Pt(100, 0)},
	}

	l, err := Assemble(d, cells, placements)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if l.Name != "test_filter" || l.Technology != "generic" || l.Units != "um" {
		t.Errorf("Assemble() identity = %q/%q/%q, want test_filter/generic/um", l.Name, l.Technology, l.Units)
	}
	if len(l.Root.Children) != 2 {
		t.Fatalf("Assemble() root has %d children, want 2", len(l.Root.Children))
	}
	if l.Root.Children[0].Node.Name != "line1" || l.Root.Children[1].Node.Name != "line2" {
		t.Errorf("Assemble() children = %q, %q, want design order line1, line2",
			l.Root.Children[0].Node.Name, l.Root.Children[1].Node.Name)
	}
	if got := l.Root.Children[1].Placement.Position; got != geometry.Pt(100, 0) {
		t.Errorf("Assemble() line2 placement = %v, want (100, 0)", got)
	}
}

func TestAssembleCollectsAllViolations(t *testing.T) {
	d := &design.Design{
		Name:       "broken",
		Technology: "generic",
		Units:      "um",
		Components: []*design.Component{
			{Name: "a", Type: "microstrip_line"},
			{Name: "b", Type: "microstrip_line", Connections: []design.Connection{
				{Port: "nope", Target: "a", TargetPort: "out"},
				{Port: "in", Target: "ghost", TargetPort: "out"},
			}},
			{Name: "c", Type: "microstrip_line"},
		},
	}
	cells := map[string]*Node{"a": lineCell("a"), "b": lineCell("b")}
	placements := map[string]geometry.Placement{"a": {}, "b": {}}

	_, err := Assemble(d, cells, placements)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Assemble() error = %v, want *ValidationError", err)
	}
	// c has no cell, b.nope is unknown, b.in targets a missing component.
	if len(verr.Violations) != 3 {
		t.Fatalf("Assemble() collected %d violations, want 3: %v", len(verr.Violations), verr.Violations)
	}
}

func TestAssembleViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement)
		problem string
	}{
		{
			name: "missing cell",
			mutate: func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) {
				delete(cells, "line2")
			},
			problem: "no generated cell",
		},
		{
			name: "missing placement",
			mutate: func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) {
				delete(placements, "line2")
			},
			problem: "no resolved placement",
		},
		{
			name: "duplicate component name",
			mutate: func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) {
				d.Components[1].Name = "line1"
			},
			problem: "duplicate component name",
		},
		{
			name: "unknown source port",
			mutate: func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) {
				d.Components[1].Connections[0].Port = "sideways"
			},
			problem: "unknown port",
		},
		{
			name: "unknown target component",
			mutate: func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) {
				d.Components[1].Connections[0].Target = "ghost"
			},
			problem: `unknown component "ghost"`,
		},
		{
			name: "unknown target port",
			mutate: func(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) {
				d.Components[1].Connections[0].TargetPort = "sideways"
			},
			problem: `unknown port "sideways"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &design.Design{
				Name:       "test",
				Technology: "generic",
				Units:      "um",
				Components: []*design.Component{
					{Name: "line1", Type: "microstrip_line"},
					{Name: "line2", Type: "microstrip_line", Connections: []design.Connection{
						{Port: "in", Target: "line1", TargetPort: "out"},
					}},
				},
			}
			cells := map[string]*Node{"line1": lineCell("line1"), "line2": lineCell("line2")}
			placements := map[string]geometry.Placement{"line1": {}, "line2": {}}
			tt.mutate(d, cells, placements)

			_, err := Assemble(d, cells, placements)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Assemble() error = %v, want *ValidationError", err)
			}
			found := false
			for _, v := range verr.Violations {
				if strings.Contains(v.Problem, tt.problem) {
					found = true
				}
			}
			if !found {
				t.Errorf("Assemble() violations %v, want one containing %q", verr.Violations, tt.problem)
			}
		})
	}
}

func TestAssembleFanout(t *testing.T) {
	// Two components both feed from splitter.out, which is marked fanout.
	d := &design.Design{
		Name:       "divider",
		Technology: "generic",
		Units:      "um",
		Components: []*design.Component{
			{Name: "split", Type: "wilkinson_divider"},
			{Name: "left", Type: "microstrip_line", Connections: []design.Connection{
				{Port: "in", Target: "split", TargetPort: "out"},
			}},
			{Name: "right", Type: "microstrip_line", Connections: []design.Connection{
				{Port: "in", Target: "split", TargetPort: "out"},
			}},
		},
	}
	cells := map[string]*Node{
		"split": splitterCell("split"),
		"left":  lineCell("left"),
		"right": lineCell("right"),
	}
	placements := map[string]geometry.Placement{"split": {}, "left": {}, "right": {}}

	if _, err := Assemble(d, cells, placements); err != nil {
		t.Errorf("Assemble() with fanout port error = %v, want nil", err)
	}

	// The same topology on a plain port is rejected.
	cells["split"] = lineCell("split")
	_, err := Assemble(d, cells, placements)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Assemble() error = %v, want *ValidationError", err)
	}
	if len(verr.Violations) != 1 {
		t.Fatalf("Assemble() collected %d violations, want 1: %v", len(verr.Violations), verr.Violations)
	}
	v := verr.Violations[0]
	if v.Component != "split" || v.Port != "out" {
		t.Errorf("violation = %v, want split.out", v)
	}
	if !strings.Contains(v.Problem, "targeted by 2 connections") {
		t.Errorf("violation problem = %q, want fan-out message", v.Problem)
	}
}

func TestAssembleOutgoingFanout(t *testing.T) {
	d := &design.Design{
		Name:       "t",
		Technology: "generic",
		Units:      "um",
		Components: []*design.Component{
			{Name: "a", Type: "microstrip_line"},
			{Name: "b", Type: "microstrip_line"},
			{Name: "c", Type: "microstrip_line", Connections: []design.Connection{
				{Port: "out", Target: "a", TargetPort: "in"},
				{Port: "out", Target: "b", TargetPort: "in"},
			}},
		},
	}
	cells := map[string]*Node{"a": lineCell("a"), "b": lineCell("b"), "c": lineCell("c")}
	placements := map[string]geometry.Placement{"a": {}, "b": {}, "c": {}}

	_, err := Assemble(d, cells, placements)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Assemble() error = %v, want *ValidationError", err)
	}
	v := verr.Violations[0]
	if v.Component != "c" || v.Port != "out" || !strings.Contains(v.Problem, "drives 2 connections") {
		t.Errorf("violation = %v, want c.out driving 2 connections", v)
	}
}

func TestLayoutOverlaps(t *testing.T) {
	assemble := func(t *testing.T, x2 float64) *Layout {
		t.Helper()
		d := &design.Design{
			Name:       "chain",
			Technology: "generic",
			Units:      "um",
			Components: []*design.Component{
				{Name: "line1", Type: "microstrip_line"},
				{Name: "line2", Type: "microstrip_line"},
			},
		}
		cells := map[string]*Node{"line1": lineCell("line1"), "line2": lineCell("line2")}
		placements := map[string]geometry.Placement{
			"line1": {},
			"line2": {Position: geometry.Pt(x2, 0)},
		}
		l, err := Assemble(d, cells, placements)
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		return l
	}

	// Mated components touch edge to edge at x=100; touching is not an
	// overlap.
	if got := assemble(t, 100).Overlaps(); len(got) != 0 {
		t.Errorf("Overlaps() on touching components = %v, want none", got)
	}

	// Pulling line2 back 10 units overlaps the last stretch of line1.
	got := assemble(t, 90).Overlaps()
	if len(got) != 1 {
		t.Fatalf("Overlaps() = %v, want exactly one", got)
	}
	o := got[0]
	if o.A != "line1" || o.B != "line2" {
		t.Errorf("Overlaps() pair = %s/%s, want design order line1/line2", o.A, o.B)
	}
	want := geometry.Rect{Min: geometry.Pt(90, -2.5), Max: geometry.Pt(100, 2.5)}
	if o.Region != want {
		t.Errorf("Overlaps() region = %v, want %v", o.Region, want)
	}
	if s := o.String(); !strings.Contains(s, "line1 and line2 overlap") {
		t.Errorf("String() = %q, want pair description", s)
	}
}

func TestLayoutOverlapsRotated(t *testing.T) {
	// line2 rotated 180 about (200, 0) spans [100, 200], meeting line1's
	// edge at x=100 without crossing it.
	d := &design.Design{
		Name:       "folded",
		Technology: "generic",
		Units:      "um",
		Components: []*design.Component{
			{Name: "line1", Type: "microstrip_line"},
			{Name: "line2", Type: "microstrip_line"},
		},
	}
	cells := map[string]*Node{"line1": lineCell("line1"), "line2": lineCell("line2")}
	placements := map[string]geometry.Placement{
		"line1": {},
		"line2": {Position: geometry.Pt(200, 0), Rotation: 180},
	}
	l, err := Assemble(d, cells, placements)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if got := l.Overlaps(); len(got) != 0 {
		t.Errorf("Overlaps() = %v, want none for abutting rotated pair", got)
	}

	// Folding it further back crosses into line1.
	l.Root.Children[1].Placement.Position = geometry.Pt(150, 0)
	if got := l.Overlaps(); len(got) != 1 {
		t.Errorf("Overlaps() = %v, want one for the folded pair", got)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Component: "line2", Port: "in", Problem: "unknown port"},
	}}
	want := "invalid layout: line2.in: unknown port"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Violations = append(err.Violations, Violation{Component: "line3", Problem: "no generated cell"})
	got := err.Error()
	if !strings.Contains(got, "2 violations") || !strings.Contains(got, "line3: no generated cell") {
		t.Errorf("Error() = %q, want count and both violations", got)
	}
}
