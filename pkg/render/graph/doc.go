// Package graph renders design connectivity as directed graph diagrams.
//
// A design's components become nodes and its connections become edges
// labeled with the mated port pair, which makes unplaced islands and
// miswired ports visible before any geometry is generated. Diagrams are
// emitted as Graphviz DOT and can be rendered to SVG or PNG in-process.
package graph
