// Package resolve computes absolute placements for a design's
// components from its connection graph.
//
// # Overview
//
// Components and their port-to-port connections form an undirected
// graph. Each connected subgraph must contain exactly one component
// with an explicit position (the anchor); every other placement in the
// subgraph is derived from it by chaining port-mating constraints
// breadth-first along the connections. Two connected ports mate
// face-to-face: the target port lands on the source port's absolute
// position with its orientation rotated 180 degrees.
//
// A subgraph with no anchor or more than one is rejected with
// [AmbiguousPlacementError]. A component with neither a position nor
// any connections is rejected with [UnplacedComponentError]. When a
// cycle reaches a component along two paths, the two derived
// placements must agree within a numeric tolerance, otherwise
// resolution fails with [InconsistentPlacementError] instead of
// picking one. A placed component that no connection reaches simply
// keeps its explicit position.
//
// Independent subgraphs are resolved concurrently. Resolution is a
// pure function of its inputs: resolving the same design twice yields
// identical placements.
//
// # Basic Usage
//
//	cells := map[string]*layout.Node{...} // from generate
//	placements, err := resolve.Placements(dsn, cells, resolve.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
package resolve
