package generate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

// BuildFunc constructs a component cell from a validated parameter
// view, resolving layer roles through the technology. The returned
// node is in the generator's local frame with ports on the geometry
// boundary.
type BuildFunc func(p Params, t *tech.Technology) (*layout.Node, error)

// Generator describes and builds one component family. The metadata
// fields drive catalogs: the CLI component browser and the server's
// component listing render them directly.
type Generator struct {
	Type   string      `json:"type"`
	Desc   string      `json:"description"`
	Params []ParamInfo `json:"parameters"`
	Ports  []string    `json:"ports"`
	Build  BuildFunc   `json:"-"`
}

// ParamInfo documents one generator parameter. Default is nil for
// required parameters; layer parameters default to a role name.
type ParamInfo struct {
	Name    string `json:"name"`
	Desc    string `json:"description"`
	Default any    `json:"default,omitempty"`
}

// The registry is closed: every supported component type is listed
// here. Design files cannot introduce new types.
var generators = registry(
	microstripLine(),
	taperedMicrostripLine(),
	curvedMicrostripLine(),
	cpwLine(),
	cpwBend(),
	cpwTaper(),
	spiralInductor(),
	symmetricInductor(),
	solenoidInductor(),
	mimCapacitor(),
	interdigitatedCapacitor(),
	parallelPlateCapacitor(),
	wilkinsonDivider(),
	branchLineCoupler(),
	ratRaceCoupler(),
)

func registry(gens ...*Generator) map[string]*Generator {
	m := make(map[string]*Generator, len(gens))
	for _, g := range gens {
		m[g.Type] = g
	}
	return m
}

// Lookup returns the generator registered for a component type.
func Lookup(typ string) (*Generator, error) {
	g, ok := generators[typ]
	if !ok {
		return nil, &UnknownTypeError{Type: typ, Known: Types()}
	}
	return g, nil
}

// Types returns all registered component types in sorted order.
func Types() []string {
	return slices.Sorted(maps.Keys(generators))
}

// All returns every registered generator, sorted by type.
func All() []*Generator {
	out := make([]*Generator, 0, len(generators))
	for _, typ := range Types() {
		out = append(out, generators[typ])
	}
	return out
}

// Component instantiates one design component: the generator for its
// type builds the cell, and the node is named after the component so
// the assembler and exporters can reference it.
func Component(c *design.Component, t *tech.Technology) (*layout.Node, error) {
	g, err := Lookup(c.Type)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", c.Name, err)
	}
	node, err := g.Build(newParams(g.Type, c.Parameters), t)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", c.Name, err)
	}
	node.Name = c.Name
	return node, nil
}
