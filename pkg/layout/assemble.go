package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/geometry"
)

// Violation describes a single problem found while assembling a layout.
// Component is always set; Port is set only for connection problems.
type Violation struct {
	Component string `json:"component" bson:"component"`
	Port      string `json:"port,omitempty" bson:"port,omitempty"`
	Problem   string `json:"problem" bson:"problem"`
}

func (v Violation) String() string {
	if v.Port != "" {
		return fmt.Sprintf("%s.%s: %s", v.Component, v.Port, v.Problem)
	}
	return fmt.Sprintf("%s: %s", v.Component, v.Problem)
}

// ValidationError reports every violation found during [Assemble].
// Assembly never stops at the first problem, so callers see the full
// list in one pass.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid layout: " + e.Violations[0].String()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("invalid layout: %d violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

// Assemble combines generated component cells and resolved placements into
// a single [Layout] rooted at a node named after the design.
//
// Every component in the design must have a cell in cells and a placement
// in placements. Connections are checked against the cells' port sets, and
// each non-fanout port may participate in at most one connection on either
// end. All violations are collected into a single [ValidationError] rather
// than failing fast. Children on the root preserve design order.
func Assemble(d *design.Design, cells map[string]*Node, placements map[string]geometry.Placement) (*Layout, error) {
	var violations []Violation

	seen := make(map[string]bool, len(d.Components))
	for _, c := range d.Components {
		if seen[c.Name] {
			violations = append(violations, Violation{
				Component: c.Name,
				Problem:   "duplicate component name",
			})
		}
		seen[c.Name] = true
	}

	// outgoing counts connections declared on a port, incoming counts
	// connections targeting it. Keyed "component.port".
	outgoing := make(map[string]int)
	incoming := make(map[string]int)

	for _, c := range d.Components {
		cell, ok := cells[c.Name]
		if !ok {
			violations = append(violations, Violation{
				Component: c.Name,
				Problem:   "no generated cell",
			})
			continue
		}
		if _, ok := placements[c.Name]; !ok {
			violations = append(violations, Violation{
				Component: c.Name,
				Problem:   "no resolved placement",
			})
		}

		for _, conn := range c.Connections {
			if _, ok := cell.Ports[conn.Port]; !ok {
				violations = append(violations, Violation{
					Component: c.Name,
					Port:      conn.Port,
					Problem:   fmt.Sprintf("unknown port (cell has %s)", strings.Join(cell.Ports.Names(), ", ")),
				})
				continue
			}
			target, ok := cells[conn.Target]
			if !ok {
				violations = append(violations, Violation{
					Component: c.Name,
					Port:      conn.Port,
					Problem:   fmt.Sprintf("connection targets unknown component %q", conn.Target),
				})
				continue
			}
			if _, ok := target.Ports[conn.TargetPort]; !ok {
				violations = append(violations, Violation{
					Component: c.Name,
					Port:      conn.Port,
					Problem:   fmt.Sprintf("connection targets unknown port %q on %q", conn.TargetPort, conn.Target),
				})
				continue
			}
			outgoing[c.Name+"."+conn.Port]++
			incoming[conn.Target+"."+conn.TargetPort]++
		}
	}

	// Fan-out check runs after all connections are tallied so that a port
	// used from two separate components is still caught.
	for _, c := range d.Components {
		cell, ok := cells[c.Name]
		if !ok {
			continue
		}
		for _, name := range cell.Ports.Names() {
			p := cell.Ports[name]
			if p.Fanout {
				continue
			}
			key := c.Name + "." + name
			if n := outgoing[key]; n > 1 {
				violations = append(violations, Violation{
					Component: c.Name,
					Port:      name,
					Problem:   fmt.Sprintf("port drives %d connections but does not allow fan-out", n),
				})
			}
			if n := incoming[key]; n > 1 {
				violations = append(violations, Violation{
					Component: c.Name,
					Port:      name,
					Problem:   fmt.Sprintf("port is targeted by %d connections but does not allow fan-out", n),
				})
			}
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	root := NewNode(d.Name)
	for _, c := range d.Components {
		root.AddChild(cells[c.Name], placements[c.Name])
	}
	return &Layout{
		Name:       d.Name,
		Technology: d.Technology,
		Units:      d.Units,
		Root:       root,
	}, nil
}

// Overlap is a pair of placed components whose bounding boxes intersect
// with positive area. Boxes are conservative: a rotated or curved
// component can flag an overlap its polygons do not actually have, so
// overlaps are advisory and never fail assembly.
type Overlap struct {
	A      string        `json:"a" bson:"a"`
	B      string        `json:"b" bson:"b"`
	Region geometry.Rect `json:"region" bson:"region"`
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s and %s overlap over a %.3g x %.3g region", o.A, o.B, o.Region.W(), o.Region.H())
}

// Overlaps returns every pair of top-level components whose placed
// bounding boxes intersect with positive area, in design order. Mated
// components legitimately touch edge to edge; touching alone does not
// count.
func (l *Layout) Overlaps() []Overlap {
	children := l.Root.Children
	bounds := make([]geometry.Rect, len(children))
	for i, c := range children {
		bounds[i] = placedBounds(c)
	}

	var out []Overlap
	for i := range children {
		for j := i + 1; j < len(children); j++ {
			region, ok := intersection(bounds[i], bounds[j])
			if !ok {
				continue
			}
			out = append(out, Overlap{
				A:      children[i].Node.Name,
				B:      children[j].Node.Name,
				Region: region,
			})
		}
	}
	return out
}

// placedBounds maps a child's local bounds through its placement. The
// rotated box is re-boxed axis-aligned, so this can only overestimate.
func placedBounds(c Child) geometry.Rect {
	local := c.Node.Bounds()
	if local.IsEmpty() {
		return local
	}
	t := c.Placement.Transform()
	r := geometry.EmptyRect()
	for _, corner := range []geometry.Point{
		local.Min,
		geometry.Pt(local.Max.X, local.Min.Y),
		local.Max,
		geometry.Pt(local.Min.X, local.Max.Y),
	} {
		r = r.ExpandToInclude(t.Apply(corner))
	}
	return r
}

// overlapTol is the smallest region dimension reported as an overlap.
// Rotated placements carry float noise on the order of 1e-16, so exact
// edge contact can read as a sliver-thin intersection without it.
const overlapTol = 1e-6

// intersection returns the common region of two rectangles, reporting
// false unless both dimensions exceed overlapTol.
func intersection(a, b geometry.Rect) (geometry.Rect, bool) {
	if a.IsEmpty() || b.IsEmpty() {
		return geometry.EmptyRect(), false
	}
	min := geometry.Pt(math.Max(a.Min.X, b.Min.X), math.Max(a.Min.Y, b.Min.Y))
	max := geometry.Pt(math.Min(a.Max.X, b.Max.X), math.Min(a.Max.Y, b.Max.Y))
	if max.X-min.X <= overlapTol || max.Y-min.Y <= overlapTol {
		return geometry.EmptyRect(), false
	}
	return geometry.Rect{Min: min, Max: max}, true
}
