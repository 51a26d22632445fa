package resolve

import (
	"fmt"
	"maps"
	"math"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
)

// Resolution defaults.
const (
	DefaultMatingOffset = 180.0
	DefaultTolerance    = 1e-6
)

// Options tune placement resolution. The zero value selects the
// defaults.
type Options struct {
	// MatingOffset is the angle in degrees between the absolute
	// orientations of two connected ports. The default 180 mates ports
	// face to face; zero selects the default.
	MatingOffset float64

	// Tolerance bounds the position and rotation disagreement allowed
	// when a cycle reaches a component along two paths.
	Tolerance float64
}

func (o Options) withDefaults() Options {
	if o.MatingOffset == 0 {
		o.MatingOffset = DefaultMatingOffset
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// Placements resolves one absolute placement per component of the
// design. cells maps component names to their generated geometry;
// resolution reads port positions and orientations from it.
//
// Independent subgraphs are resolved concurrently, and their errors
// are collected rather than short-circuited: a failure in one subgraph
// does not suppress problems found in another. Placements is pure;
// resolving the same inputs again yields identical results.
func Placements(d *design.Design, cells map[string]*layout.Node, opts Options) (map[string]geometry.Placement, error) {
	opts = opts.withDefaults()

	g, err := buildGraph(d)
	if err != nil {
		return nil, err
	}

	subs := g.subgraphs()
	results := make([]map[string]geometry.Placement, len(subs))
	errs := make([]error, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = g.solve(sub, cells, opts)
		}()
	}
	wg.Wait()

	var result *multierror.Error
	for _, err := range errs {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	placements := make(map[string]geometry.Placement, len(d.Components))
	for _, r := range results {
		maps.Copy(placements, r)
	}
	return placements, nil
}

// solve derives placements for one connected subgraph.
func (g *graph) solve(sub []int, cells map[string]*layout.Node, opts Options) (map[string]geometry.Placement, error) {
	if len(sub) == 1 {
		c := g.components[sub[0]]
		if !c.Placed() {
			return nil, &UnplacedComponentError{Component: c.Name}
		}
		return map[string]geometry.Placement{c.Name: explicit(c)}, nil
	}

	var anchors []int
	for _, i := range sub {
		if g.components[i].Placed() {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) != 1 {
		return nil, &AmbiguousPlacementError{
			Components: g.names(sub),
			Anchors:    g.names(anchors),
		}
	}

	anchor := anchors[0]
	placed := make(map[int]geometry.Placement, len(sub))
	placed[anchor] = explicit(g.components[anchor])

	queue := []int{anchor}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		curCell, err := g.cell(cells, cur)
		if err != nil {
			return nil, err
		}
		for _, e := range g.adj[cur] {
			srcPort, ok := curCell.Ports[e.fromPort]
			if !ok {
				return nil, fmt.Errorf("component %s has no port %q", g.components[cur].Name, e.fromPort)
			}
			tgtCell, err := g.cell(cells, e.to)
			if err != nil {
				return nil, err
			}
			tgtPort, ok := tgtCell.Ports[e.toPort]
			if !ok {
				return nil, fmt.Errorf("component %s has no port %q", g.components[e.to].Name, e.toPort)
			}

			// The declared direction applies the mating offset; the
			// reverse half-edge undoes it, so both traversals of a
			// connection agree for any offset.
			offset := opts.MatingOffset
			if e.reverse {
				offset = -offset
			}
			cand := mate(placed[cur], srcPort, tgtPort, offset)

			prev, seen := placed[e.to]
			if !seen {
				placed[e.to] = cand
				queue = append(queue, e.to)
				continue
			}
			if prev.Position.Distance(cand.Position) > opts.Tolerance ||
				math.Abs(geometry.AngleDelta(prev.Rotation, cand.Rotation)) > opts.Tolerance {
				return nil, &InconsistentPlacementError{
					Component: g.components[e.to].Name,
					First:     prev,
					Second:    cand,
				}
			}
		}
	}

	out := make(map[string]geometry.Placement, len(placed))
	for i, pl := range placed {
		out[g.components[i].Name] = pl
	}
	return out, nil
}

// mate places the target component so that tgtPort's absolute position
// coincides with srcPort's and its absolute orientation sits offset
// degrees away from srcPort's.
func mate(src geometry.Placement, srcPort, tgtPort layout.Port, offset float64) geometry.Placement {
	world := srcPort.Transformed(src)
	rotation := geometry.NormalizeAngle(world.Orientation + offset - tgtPort.Orientation)
	return geometry.Placement{
		Position: world.Position.Sub(tgtPort.Position.Rotate(rotation)),
		Rotation: rotation,
	}
}

// explicit converts a component's declared position and rotation.
func explicit(c *design.Component) geometry.Placement {
	return geometry.Placement{
		Position: geometry.Pt(c.Position.X, c.Position.Y),
		Rotation: c.Rotation,
	}.Normalize()
}

func (g *graph) cell(cells map[string]*layout.Node, i int) (*layout.Node, error) {
	name := g.components[i].Name
	cell, ok := cells[name]
	if !ok {
		return nil, fmt.Errorf("no generated cell for component %s", name)
	}
	return cell, nil
}

func (g *graph) names(indices []int) []string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = g.components[idx].Name
	}
	return names
}
