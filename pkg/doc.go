// Package pkg provides the core libraries for rfgds circuit layout generation.
//
// # Overview
//
// rfgds transforms declarative YAML descriptions of RF circuits into
// fabrication-ready GDSII layouts. The pkg directory is organized into
// four main areas:
//
//  1. Domain logic (geometry, component generation, placement resolution)
//  2. Formats (design YAML, technology TOML, GDSII, SVG, DOT)
//  3. Infrastructure (caching, catalog, observability)
//  4. Orchestration (the conversion pipeline used by CLI and server)
//
// # Architecture
//
// The typical data flow through rfgds:
//
//	YAML design + TOML technology
//	         ↓
//	    [design] + [tech] (parse and validate)
//	         ↓
//	    [generate] (build component cells: polygons + ports)
//	         ↓
//	    [resolve] (place components from port-to-port connections)
//	         ↓
//	    [layout] (assemble the hierarchical layout, check overlaps)
//	         ↓
//	    GDS/SVG/JSON/DOT output
//
// # Quick Start
//
// Convert a design end to end:
//
//	import (
//	    "context"
//	    "github.com/rfgds/rfgds/pkg/cache"
//	    "github.com/rfgds/rfgds/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	res, err := runner.Execute(context.Background(), source, pipeline.Options{
//	    Formats: []string{pipeline.FormatGDS, pipeline.FormatSVG},
//	})
//
// Or drive the stages directly:
//
//	d, _ := design.Parse(source)
//	t, _ := tech.Get(d.Technology)
//	cells := map[string]*layout.Node{}
//	for _, comp := range d.Components {
//	    cells[comp.Name], _ = generate.Component(comp, t)
//	}
//	placements, _ := resolve.Placements(d, cells, resolve.Options{})
//	top, _ := layout.Assemble(d, cells, placements)
//
// # Main Packages
//
// ## Domain Logic
//
// [geometry] - Planar primitives: points, bounding boxes, paths, polygons,
// transforms. Everything downstream is built from these.
//
// [generate] - Component generators (microstrip lines, CPW, spiral and
// meander inductors, MIM and interdigital capacitors, Wilkinson dividers,
// branch-line and rat-race couplers). A registry maps type names to
// generators.
//
// [resolve] - Placement resolution: propagates positions through the
// connection graph from anchored components, mating ports with a 180°
// orientation rule.
//
// [layout] - Hierarchical layout assembly, overlap validation, and the
// JSON interchange format.
//
// ## Formats
//
// [design] - The YAML design front end: schema, parsing, validation.
//
// [tech] - Technology definitions: layer stacks, role-to-GDS mapping,
// TOML loading, and a built-in generic technology.
//
// [gds] - GDSII stream format writer.
//
// [render/preview] - SVG rendering of resolved layouts.
//
// [render/graph] - Connectivity graphs as DOT/SVG/PNG via Graphviz.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of generated cells, resolved
// layouts, and rendered artifacts. File, Redis, and null backends.
//
// [catalog] - Persistent design catalog used by the HTTP service.
// Memory and MongoDB backends.
//
// [observability] - Hook points for pipeline and cache instrumentation.
//
// ## Orchestration
//
// [pipeline] - The complete conversion pipeline (parse → generate →
// resolve → assemble → render) used by both CLI and server. Ensures
// consistent behavior across entry points.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/resolve/...      # Specific package
//
// [geometry]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/geometry
// [generate]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/generate
// [resolve]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/resolve
// [layout]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/layout
// [design]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/design
// [tech]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/tech
// [gds]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/gds
// [render/preview]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/render/preview
// [render/graph]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/render/graph
// [cache]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/cache
// [catalog]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/catalog
// [observability]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/rfgds/rfgds/pkg/pipeline
package pkg
