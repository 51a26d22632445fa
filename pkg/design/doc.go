// Package design defines the declarative circuit description that the
// layout engine consumes, and its YAML encoding.
//
// A design names a technology and lists components. Each component has
// a unique name, a type tag selecting its generator, a free-form
// parameter set, an optional explicit placement, and port-to-port
// connections to other components:
//
//	name: lowpass_filter
//	technology: generic
//	units: um
//	components:
//	  - name: feed
//	    type: microstrip_line
//	    parameters: {length: 100, width: 5}
//	    position: [0, 0]
//	  - name: stub
//	    type: microstrip_line
//	    parameters: {length: 50, width: 5}
//	    connections:
//	      - {port: in, target: feed, target_port: out}
//
// [Parse] is lenient: missing top-level fields fall back to defaults
// (an unnamed design on the generic technology in micrometers) and
// unknown keys are ignored. [Design.Validate] is strict and reports
// every structural problem at once, so a design file's issues surface
// in a single pass rather than one fix at a time.
//
// Position is optional and distinguishes "placed at the origin" from
// "not explicitly placed": placement resolution anchors each connected
// group of components at the one component that has an explicit
// position.
package design
