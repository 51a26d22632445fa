package tech

import (
	"fmt"
	"maps"
	"slices"
)

// LayerID is a physical GDS layer: the layer number plus datatype.
// It is small and comparable, and is the key under which polygons are
// grouped in layouts.
type LayerID struct {
	Layer    int `json:"layer" bson:"layer"`
	Datatype int `json:"datatype" bson:"datatype"`
}

// String renders the conventional "layer/datatype" notation, e.g. "1/0".
func (l LayerID) String() string {
	return fmt.Sprintf("%d/%d", l.Layer, l.Datatype)
}

// Layer is a named technology layer: a logical role bound to a
// physical [LayerID].
type Layer struct {
	Name        string  `json:"name" bson:"name"`
	ID          LayerID `json:"id" bson:"id"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

// UnmappedLayerError is returned by [Technology.Layer] when a generator
// asks for a layer role the technology does not define.
type UnmappedLayerError struct {
	Technology string // technology that was queried
	Role       string // layer role that has no mapping
}

// Error implements the error interface.
func (e *UnmappedLayerError) Error() string {
	return fmt.Sprintf("layer role %q is not mapped in technology %q", e.Role, e.Technology)
}

// Technology is a process description: a set of named layers and
// design-rule values. Instances are treated as immutable after
// construction and may be shared across goroutines.
type Technology struct {
	Name        string
	Description string
	Layers      map[string]Layer
	Rules       map[string]float64
}

// Layer resolves a logical layer role to its physical ID.
// Returns an [*UnmappedLayerError] if the role is not defined.
func (t *Technology) Layer(role string) (LayerID, error) {
	l, ok := t.Layers[role]
	if !ok {
		return LayerID{}, &UnmappedLayerError{Technology: t.Name, Role: role}
	}
	return l.ID, nil
}

// HasLayer reports whether the technology defines the given role.
func (t *Technology) HasLayer(role string) bool {
	_, ok := t.Layers[role]
	return ok
}

// Rule returns the named design-rule value, if defined.
func (t *Technology) Rule(name string) (float64, bool) {
	v, ok := t.Rules[name]
	return v, ok
}

// LayerRoles returns the defined layer roles in sorted order.
func (t *Technology) LayerRoles() []string {
	return slices.Sorted(maps.Keys(t.Layers))
}

// RuleNames returns the defined design-rule names in sorted order.
func (t *Technology) RuleNames() []string {
	return slices.Sorted(maps.Keys(t.Rules))
}
