package generate

import (
	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Params is a generator's typed view of a component's raw parameter
// set. Accessors perform checked conversion and attach the component
// type to every error, so a failure names both the type and the
// parameter. Extra parameters the generator never asks for are
// ignored.
type Params struct {
	component string
	raw       design.Params
}

func newParams(component string, raw design.Params) Params {
	return Params{component: component, raw: raw}
}

// Float reads a required numeric parameter.
func (p Params) Float(name string) (float64, error) {
	if !p.raw.Has(name) {
		return 0, &MissingParameterError{Type: p.component, Param: name}
	}
	v, ok := p.raw.Float(name)
	if !ok {
		return 0, &InvalidParameterError{Type: p.component, Param: name, Value: p.raw[name], Want: "a number"}
	}
	return v, nil
}

// FloatOr reads an optional numeric parameter, falling back to def
// when absent. A present but non-numeric value is still an error.
func (p Params) FloatOr(name string, def float64) (float64, error) {
	if !p.raw.Has(name) {
		return def, nil
	}
	return p.Float(name)
}

// Int reads a required integer parameter. Whole-valued floats are
// accepted, matching YAML's loose numeric typing.
func (p Params) Int(name string) (int, error) {
	if !p.raw.Has(name) {
		return 0, &MissingParameterError{Type: p.component, Param: name}
	}
	v, ok := p.raw.Int(name)
	if !ok {
		return 0, &InvalidParameterError{Type: p.component, Param: name, Value: p.raw[name], Want: "an integer"}
	}
	return v, nil
}

// Layer resolves a layer parameter through the technology. The value
// may be a role name ("metal2") or an explicit [layer, datatype] pair;
// when the parameter is absent the generator's default role applies.
func (p Params) Layer(name, role string, t *tech.Technology) (tech.LayerID, error) {
	if !p.raw.Has(name) {
		return t.Layer(role)
	}
	if s, ok := p.raw.String(name); ok {
		return t.Layer(s)
	}
	if layer, datatype, ok := p.raw.IntPair(name); ok {
		return tech.LayerID{Layer: layer, Datatype: datatype}, nil
	}
	return tech.LayerID{}, &InvalidParameterError{
		Type:  p.component,
		Param: name,
		Value: p.raw[name],
		Want:  "a layer role or [layer, datatype] pair",
	}
}

// reject builds a value-domain error carrying the component type, for
// constraints the geometry builders do not check themselves.
func (p Params) reject(param string, value float64, reason string) error {
	return geometry.NewParameterError(p.component, param, value, reason)
}
