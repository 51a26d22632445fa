// Package gds writes layouts as GDSII stream files.
//
// GDSII is the interchange format mask tools and foundries consume: a
// big-endian stream of tagged records describing a library of named
// structures, each holding boundary elements on numbered layers and
// references to other structures. This package maps a [layout.Layout]
// onto that model directly: every node becomes a structure, polygons
// become BOUNDARY elements, and child placements become SREF elements
// carrying the child's position and rotation, so the component hierarchy
// of the design survives into the stream.
//
// Coordinates are written in database units. With the default database
// unit of 0.001 design units and micrometer designs, coordinates land on
// a 1 nm grid, which is finer than any design rule in the bundled
// technologies.
package gds
