package layout

import (
	"maps"
	"slices"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Port is a named connection point on a component: where it sits in
// the component's local frame, how wide the connecting trace is, which
// layer it lives on, and which direction it faces (degrees, pointing
// away from the component body).
type Port struct {
	Name        string         `json:"name" bson:"name"`
	Position    geometry.Point `json:"position" bson:"position"`
	Width       float64        `json:"width" bson:"width"`
	Layer       tech.LayerID   `json:"layer" bson:"layer"`
	Orientation float64        `json:"orientation" bson:"orientation"`

	// Fanout marks ports whose contract allows multiple connections,
	// e.g. power divider outputs. All other ports accept at most one
	// connection on each side.
	Fanout bool `json:"fanout,omitempty" bson:"fanout,omitempty"`
}

// Transformed returns the port mapped through a placement: position
// moved into the world frame and orientation rotated accordingly.
func (p Port) Transformed(pl geometry.Placement) Port {
	p.Position = pl.Transform().Apply(p.Position)
	p.Orientation = geometry.NormalizeAngle(p.Orientation + pl.Rotation)
	return p
}

// PortSet is a component's ports keyed by name.
type PortSet map[string]Port

// Names returns the port names in sorted order.
func (s PortSet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// PolygonSet groups polygons by physical layer.
type PolygonSet map[tech.LayerID][]geometry.Polygon

// Add appends a polygon to a layer.
func (s PolygonSet) Add(layer tech.LayerID, p geometry.Polygon) {
	s[layer] = append(s[layer], p)
}

// Layers returns the populated layers ordered by layer number, then
// datatype. Iterating in this order keeps serialization and export
// deterministic.
func (s PolygonSet) Layers() []tech.LayerID {
	layers := slices.Collect(maps.Keys(s))
	slices.SortFunc(layers, func(a, b tech.LayerID) int {
		if a.Layer != b.Layer {
			return a.Layer - b.Layer
		}
		return a.Datatype - b.Datatype
	})
	return layers
}

// Count returns the total number of polygons across all layers.
func (s PolygonSet) Count() int {
	n := 0
	for _, polys := range s {
		n += len(polys)
	}
	return n
}

// Bounds returns the bounding rectangle of all polygons in the set.
func (s PolygonSet) Bounds() geometry.Rect {
	r := geometry.EmptyRect()
	for _, polys := range s {
		for _, p := range polys {
			r = r.Union(p.Bounds())
		}
	}
	return r
}

// Node is one level of the layout hierarchy: flat polygons per layer,
// named ports, and placed child nodes. Generators produce leaf nodes
// in a local frame; the assembler builds the root.
type Node struct {
	Name     string
	Polygons PolygonSet
	Ports    PortSet
	Children []Child
}

// Child is a node mounted under a parent with a placement.
type Child struct {
	Node      *Node
	Placement geometry.Placement
}

// NewNode creates an empty named node.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Polygons: PolygonSet{},
		Ports:    PortSet{},
	}
}

// AddChild mounts a child node with the given placement.
func (n *Node) AddChild(child *Node, pl geometry.Placement) {
	n.Children = append(n.Children, Child{Node: child, Placement: pl})
}

// Flatten collapses the subtree into a single polygon set in n's
// frame, applying child placements recursively.
func (n *Node) Flatten() PolygonSet {
	out := PolygonSet{}
	n.flattenInto(out, geometry.Identity())
	return out
}

func (n *Node) flattenInto(dst PolygonSet, t geometry.Transform) {
	for layer, polys := range n.Polygons {
		for _, p := range polys {
			dst.Add(layer, p.Transform(t))
		}
	}
	for _, c := range n.Children {
		c.Node.flattenInto(dst, t.Compose(c.Placement.Transform()))
	}
}

// Bounds returns the bounding rectangle of the subtree in n's frame.
func (n *Node) Bounds() geometry.Rect {
	return n.Flatten().Bounds()
}

// Layout is an assembled design: the root of the geometry tree plus
// the design identity it was built from.
type Layout struct {
	Name       string
	Technology string
	Units      string
	Root       *Node
}

// Bounds returns the bounding rectangle of the whole layout.
func (l *Layout) Bounds() geometry.Rect {
	return l.Root.Bounds()
}

// ComponentPorts returns every port of every top-level component in
// world coordinates, in design order. Port names are qualified as
// "component.port".
func (l *Layout) ComponentPorts() []Port {
	var out []Port
	for _, c := range l.Root.Children {
		for _, name := range c.Node.Ports.Names() {
			p := c.Node.Ports[name].Transformed(c.Placement)
			p.Name = c.Node.Name + "." + name
			out = append(out, p)
		}
	}
	return out
}
