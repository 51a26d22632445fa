package generate

import (
	"fmt"
	"strings"
)

// MissingParameterError reports a required generator parameter that is
// absent from a component's parameter set.
type MissingParameterError struct {
	Type  string // component type
	Param string // missing parameter name
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Type, e.Param)
}

// InvalidParameterError reports a parameter that is present but cannot
// be read as the type the generator needs.
type InvalidParameterError struct {
	Type  string // component type
	Param string // offending parameter name
	Value any    // value as parsed from the design
	Want  string // what the generator expected
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: parameter %q must be %s (got %v)", e.Type, e.Param, e.Want, e.Value)
}

// UnknownTypeError reports a design component whose type tag has no
// registered generator.
type UnknownTypeError struct {
	Type  string
	Known []string // registered types, sorted
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown component type %q (known types: %s)", e.Type, strings.Join(e.Known, ", "))
}
