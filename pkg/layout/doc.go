// Package layout defines the hierarchical geometry tree produced by
// the layout engine, and the assembler that builds it from generated
// component cells and resolved placements.
//
// # Structure
//
// A [Layout] wraps a tree of [Node] values. Each node holds polygons
// grouped by physical layer, named ports, and child nodes placed with
// a position and rotation. Component generators produce single-level
// nodes in a local frame; the assembler mounts one child per design
// component under a root node carrying the component's resolved
// placement. The tree maps directly onto GDSII structures and
// references, so hierarchy survives export instead of being flattened
// away.
//
// Layouts are immutable once assembled: consumers read, flatten, or
// serialize them but never modify them in place.
//
// # Validation
//
// [Assemble] validates the design's connectivity against the generated
// cells before building the tree: connections must reference existing
// components and ports, and a port carries at most one connection on
// each side unless it is explicitly marked as a fan-out port (power
// divider outputs). All violations are collected into a single
// [*ValidationError] rather than surfacing one at a time.
//
// # Serialization
//
// [WriteJSON] and [ReadJSON] encode the tree in a stable JSON format
// used by the HTTP API, the design catalog, and the artifact cache.
package layout
