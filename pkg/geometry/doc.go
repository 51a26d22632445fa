// Package geometry provides the planar primitives that RF component
// generators are built from: points, polygons, affine placement
// transforms, and parametric shape builders for rectangles, tapers,
// annular arcs, and spiral paths.
//
// # Coordinates and Units
//
// All coordinates are float64 in the design's base unit (typically
// micrometers). Values are used exactly as computed - there is no grid
// snapping or rounding at this level. Quantization happens once, at
// export time, when coordinates are converted to database units.
//
// # Angles
//
// Every angle in this package is expressed in degrees, measured
// counter-clockwise from the positive x axis. [NormalizeAngle] maps any
// angle into the canonical [0, 360) range; [AngleDelta] computes the
// smallest signed difference between two angles for tolerance checks.
//
// # Shape Builders
//
// The parametric builders ([Rectangle], [Taper], [Arc], [Ring],
// [SpiralPath], [PathOutline]) validate their inputs and return a
// [*ParameterError] for dimensions that cannot describe a physical
// shape (non-positive lengths, widths, or radii). Raw corner
// construction via [Box] performs no validation and is intended for
// derived rectangles whose parameters were already checked.
//
// Curved shapes are sampled into polygons. Sampling density scales with
// arc angle and spiral turn count so that short bends stay light while
// long spirals remain smooth.
package geometry
