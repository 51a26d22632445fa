package design

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
)

const sampleYAML = `
name: test_filter
technology: generic
units: um
components:
  - name: line1
    type: microstrip_line
    parameters:
      length: 100
      width: 5
    position: [0, 0]
  - name: line2
    type: microstrip_line
    parameters:
      length: 50
      width: 5
    rotation: 0
    connections:
      - port: in
        target: line1
        target_port: out
metadata:
  author: rf team
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if d.Name != "test_filter" {
		t.Errorf("Name = %q, want test_filter", d.Name)
	}
	if d.Technology != "generic" || d.Units != "um" {
		t.Errorf("Technology/Units = %q/%q", d.Technology, d.Units)
	}
	if len(d.Components) != 2 {
		t.Fatalf("len(Components) = %d, want 2", len(d.Components))
	}

	line1 := d.Components[0]
	if !line1.Placed() {
		t.Error("line1.Placed() = false, want true")
	}
	if line1.Position.X != 0 || line1.Position.Y != 0 {
		t.Errorf("line1.Position = %+v, want origin", line1.Position)
	}

	line2 := d.Components[1]
	if line2.Placed() {
		t.Error("line2.Placed() = true, want false (no position key)")
	}
	if len(line2.Connections) != 1 {
		t.Fatalf("line2 connections = %d, want 1", len(line2.Connections))
	}
	conn := line2.Connections[0]
	if conn.Port != "in" || conn.Target != "line1" || conn.TargetPort != "out" {
		t.Errorf("connection = %+v", conn)
	}
}

func TestParse_Defaults(t *testing.T) {
	d, err := Parse([]byte("components: []\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if d.Name != DefaultName {
		t.Errorf("Name = %q, want %q", d.Name, DefaultName)
	}
	if d.Technology != DefaultTechnology {
		t.Errorf("Technology = %q, want %q", d.Technology, DefaultTechnology)
	}
	if d.Units != DefaultUnits {
		t.Errorf("Units = %q, want %q", d.Units, DefaultUnits)
	}
	if d.Components == nil {
		t.Error("explicit empty components should parse as non-nil")
	}
}

func TestParse_BadPosition(t *testing.T) {
	src := `
components:
  - name: c1
    type: microstrip_line
    position: [1, 2, 3]
`
	if _, err := Parse([]byte(src)); err == nil {
		t.Error("three-element position should fail to parse")
	}

	src = strings.Replace(src, "[1, 2, 3]", "oops", 1)
	if _, err := Parse([]byte(src)); err == nil {
		t.Error("scalar position should fail to parse")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	d, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	out, err := d.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	d2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse error: %v", err)
	}
	if d2.Name != d.Name || len(d2.Components) != len(d.Components) {
		t.Errorf("round trip changed design: %q/%d vs %q/%d",
			d2.Name, len(d2.Components), d.Name, len(d.Components))
	}
	if !d2.Components[0].Placed() || d2.Components[1].Placed() {
		t.Error("round trip changed placement flags")
	}
}

func TestComponentLookup(t *testing.T) {
	d, _ := Parse([]byte(sampleYAML))

	if c, ok := d.Component("line2"); !ok || c.Type != "microstrip_line" {
		t.Errorf("Component(line2) = %v, %v", c, ok)
	}
	if _, ok := d.Component("nope"); ok {
		t.Error("Component(nope) should not be found")
	}
}

func TestValidate_OK(t *testing.T) {
	d, _ := Parse([]byte(sampleYAML))
	if err := d.Validate(); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	src := `
components:
  - name: c1
    type: microstrip_line
  - name: c1
    type: ""
  - name: c2
    type: microstrip_line
    connections:
      - port: in
        target: c1
`
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	// Defaults fill name/technology, so the remaining problems are the
	// duplicate name, the empty type, and the incomplete connection.
	err = d.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Validate error is %T, want *multierror.Error", err)
	}
	if len(merr.Errors) != 3 {
		t.Errorf("Validate reported %d problems, want 3: %v", len(merr.Errors), merr)
	}
}

func TestValidate_MissingEverything(t *testing.T) {
	d := &Design{}
	err := d.Validate()
	if err == nil {
		t.Fatal("Validate should fail for the zero design")
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Validate error is %T, want *multierror.Error", err)
	}
	if len(merr.Errors) != 3 {
		t.Errorf("Validate reported %d problems, want 3 (name, technology, components)", len(merr.Errors))
	}
}
