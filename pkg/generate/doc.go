// Package generate turns design components into layout cells.
//
// # Overview
//
// Every supported component family (microstrip lines, CPW structures,
// inductors, capacitors, dividers, couplers) has one [Generator] that
// maps a parameter set to polygons and ports in a local coordinate
// frame. The registry is closed: [Lookup] resolves a design component's
// type tag to its generator, [Types] and [All] enumerate the catalog
// for browsers and documentation.
//
// # Basic Usage
//
// Instantiate a parsed design component against a technology:
//
//	cell, err := generate.Component(comp, tech.Generic())
//
// The returned [layout.Node] carries the component's geometry grouped
// by physical layer and its named ports, in the generator's local
// frame. Placement into the design frame happens later, in the
// resolver and assembler.
//
// # Parameters
//
// Generators validate their own parameters: a missing required
// parameter fails with [MissingParameterError], a present but unusable
// value with [InvalidParameterError], and a value outside its physical
// domain with a [geometry.ParameterError]. Unknown extra parameters are
// ignored. Layer parameters accept either a role name defined by the
// technology ("metal1") or an explicit [layer, datatype] pair; when
// absent, each generator's documented default role applies.
package generate
