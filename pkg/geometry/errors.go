package geometry

import "fmt"

// ParameterError reports a shape parameter that cannot describe a
// physical geometry, such as a non-positive width or a radius smaller
// than the trace it must carry. Builders never clamp or repair bad
// values - they fail so the caller can surface the exact offending
// parameter.
type ParameterError struct {
	Shape  string  // shape or component being constructed
	Param  string  // offending parameter name
	Value  float64 // value that was rejected
	Reason string  // constraint that was violated
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: parameter %q %s (got %v)", e.Shape, e.Param, e.Reason, e.Value)
}

// NewParameterError creates a ParameterError with an explicit reason.
// Component generators use this for geometric constraints that span
// multiple parameters, e.g. a spiral pitch that does not clear its own
// trace width.
func NewParameterError(shape, param string, value float64, reason string) *ParameterError {
	return &ParameterError{Shape: shape, Param: param, Value: value, Reason: reason}
}

func errPositive(shape, param string, value float64) *ParameterError {
	return &ParameterError{Shape: shape, Param: param, Value: value, Reason: "must be positive"}
}

func errNonNegative(shape, param string, value float64) *ParameterError {
	return &ParameterError{Shape: shape, Param: param, Value: value, Reason: "must not be negative"}
}
