package design

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Defaults applied by [Parse] when a design omits top-level fields.
const (
	DefaultName       = "unnamed_design"
	DefaultTechnology = "generic"
	DefaultUnits      = "um"
)

// Design is a complete declarative circuit description.
type Design struct {
	Name       string         `yaml:"name" json:"name" bson:"name"`
	Technology string         `yaml:"technology" json:"technology" bson:"technology"`
	Units      string         `yaml:"units" json:"units" bson:"units"`
	Components []*Component   `yaml:"components" json:"components" bson:"components"`
	Metadata   map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Component is one named instance of a generator type.
type Component struct {
	Name        string       `yaml:"name" json:"name" bson:"name"`
	Type        string       `yaml:"type" json:"type" bson:"type"`
	Parameters  Params       `yaml:"parameters,omitempty" json:"parameters,omitempty" bson:"parameters,omitempty"`
	Position    *Position    `yaml:"position,omitempty" json:"position,omitempty" bson:"position,omitempty"`
	Rotation    float64      `yaml:"rotation,omitempty" json:"rotation,omitempty" bson:"rotation,omitempty"`
	Connections []Connection `yaml:"connections,omitempty" json:"connections,omitempty" bson:"connections,omitempty"`
}

// Placed reports whether the component carries an explicit placement.
// A position of [0, 0] is still an explicit placement; only a missing
// position key leaves a component unplaced.
func (c *Component) Placed() bool { return c.Position != nil }

// Connection attaches one of this component's ports to a port on a
// target component. Connections are declared on the source side but
// constrain both components symmetrically during placement resolution.
type Connection struct {
	Port       string `yaml:"port" json:"port" bson:"port"`
	Target     string `yaml:"target" json:"target" bson:"target"`
	TargetPort string `yaml:"target_port" json:"target_port" bson:"target_port"`
}

// Position is an explicit (x, y) placement. In YAML it is written as a
// two-element sequence: position: [10, 25.5].
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// UnmarshalYAML decodes the [x, y] sequence form.
func (p *Position) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []float64
	if err := unmarshal(&pair); err != nil {
		return fmt.Errorf("position must be a [x, y] sequence: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("position must have exactly 2 elements, got %d", len(pair))
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// MarshalYAML emits the [x, y] sequence form.
func (p Position) MarshalYAML() (any, error) {
	return []float64{p.X, p.Y}, nil
}

// Parse decodes a YAML design description. Missing top-level fields
// receive defaults; structural problems beyond YAML syntax are left
// for [Design.Validate] so that a single call can report all of them.
func Parse(data []byte) (*Design, error) {
	var d Design
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse design: %w", err)
	}
	d.applyDefaults()
	return &d, nil
}

// ParseFile reads and decodes a YAML design file.
func ParseFile(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design file: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal encodes the design back to YAML.
func (d *Design) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *Design) applyDefaults() {
	if d.Name == "" {
		d.Name = DefaultName
	}
	if d.Technology == "" {
		d.Technology = DefaultTechnology
	}
	if d.Units == "" {
		d.Units = DefaultUnits
	}
	for _, c := range d.Components {
		if c.Parameters == nil {
			c.Parameters = Params{}
		}
	}
}

// Component returns the component with the given name, if present.
func (d *Design) Component(name string) (*Component, bool) {
	for _, c := range d.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
