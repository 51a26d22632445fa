package resolve

import (
	"fmt"
	"strings"

	"github.com/rfgds/rfgds/pkg/geometry"
)

// AmbiguousPlacementError reports a connected subgraph whose anchor
// cannot be determined: either none of its components has an explicit
// position, or more than one does.
type AmbiguousPlacementError struct {
	Components []string // every component in the subgraph, in design order
	Anchors    []string // the explicitly placed ones, empty when none
}

// Error implements the error interface.
func (e *AmbiguousPlacementError) Error() string {
	all := strings.Join(e.Components, ", ")
	if len(e.Anchors) == 0 {
		return fmt.Sprintf("ambiguous placement: none of the connected components %s has an explicit position", all)
	}
	return fmt.Sprintf("ambiguous placement: connected components %s have %d explicit positions (%s), want exactly one",
		all, len(e.Anchors), strings.Join(e.Anchors, ", "))
}

// UnplacedComponentError reports a component whose placement cannot be
// determined at all: it has no explicit position and no connections to
// derive one from.
type UnplacedComponentError struct {
	Component string
}

// Error implements the error interface.
func (e *UnplacedComponentError) Error() string {
	return fmt.Sprintf("component %s has no explicit position and no connections", e.Component)
}

// InconsistentPlacementError reports a component reached along two
// paths of a connection cycle that demand placements differing by more
// than the tolerance.
type InconsistentPlacementError struct {
	Component string
	First     geometry.Placement
	Second    geometry.Placement
}

// Error implements the error interface.
func (e *InconsistentPlacementError) Error() string {
	return fmt.Sprintf("inconsistent placement for %s: (%g, %g) rot %g via one path, (%g, %g) rot %g via another",
		e.Component,
		e.First.Position.X, e.First.Position.Y, e.First.Rotation,
		e.Second.Position.X, e.Second.Position.Y, e.Second.Rotation)
}
