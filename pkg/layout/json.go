package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/tech"
)

type layoutJSON struct {
	Name       string   `json:"name"`
	Technology string   `json:"technology"`
	Units      string   `json:"units"`
	Root       nodeJSON `json:"root"`
}

type nodeJSON struct {
	Name     string        `json:"name"`
	Polygons []polygonJSON `json:"polygons,omitempty"`
	Ports    []Port        `json:"ports,omitempty"`
	Children []childJSON   `json:"children,omitempty"`
}

type polygonJSON struct {
	Layer    int              `json:"layer"`
	Datatype int              `json:"datatype"`
	Points   geometry.Polygon `json:"points"`
}

type childJSON struct {
	Node      nodeJSON           `json:"node"`
	Placement geometry.Placement `json:"placement"`
}

func nodeToJSON(n *Node) nodeJSON {
	out := nodeJSON{Name: n.Name}
	for _, id := range n.Polygons.Layers() {
		for _, p := range n.Polygons[id] {
			out.Polygons = append(out.Polygons, polygonJSON{
				Layer:    id.Layer,
				Datatype: id.Datatype,
				Points:   p,
			})
		}
	}
	for _, name := range n.Ports.Names() {
		out.Ports = append(out.Ports, n.Ports[name])
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, childJSON{
			Node:      nodeToJSON(c.Node),
			Placement: c.Placement,
		})
	}
	return out
}

func nodeFromJSON(in nodeJSON) (*Node, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("node missing name")
	}
	n := NewNode(in.Name)
	for _, p := range in.Polygons {
		n.Polygons.Add(tech.LayerID{Layer: p.Layer, Datatype: p.Datatype}, p.Points)
	}
	for _, p := range in.Ports {
		if p.Name == "" {
			return nil, fmt.Errorf("node %s: port missing name", in.Name)
		}
		n.Ports[p.Name] = p
	}
	for _, c := range in.Children {
		child, err := nodeFromJSON(c.Node)
		if err != nil {
			return nil, fmt.Errorf("child of %s: %w", in.Name, err)
		}
		n.AddChild(child, c.Placement)
	}
	return n, nil
}

// MarshalNode encodes a single node as JSON, using the same deterministic
// field ordering as [WriteJSON]. It is the unit of storage for cell caches:
// a generated cell can be marshalled once and rehydrated with
// [UnmarshalNode] instead of being rebuilt.
func MarshalNode(n *Node) ([]byte, error) {
	data, err := json.Marshal(nodeToJSON(n))
	if err != nil {
		return nil, fmt.Errorf("encode node %s: %w", n.Name, err)
	}
	return data, nil
}

// UnmarshalNode decodes a node previously encoded with [MarshalNode].
func UnmarshalNode(data []byte) (*Node, error) {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	return nodeFromJSON(in)
}

// WriteJSON encodes a layout as JSON and writes it to w.
// Polygons are listed per layer in layer order, ports in name order, and
// children in placement order, so output is deterministic. The format can
// be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(l *Layout, w io.Writer) error {
	out := layoutJSON{
		Name:       l.Name,
		Technology: l.Technology,
		Units:      l.Units,
		Root:       nodeToJSON(l.Root),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a layout to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}

// ReadJSON decodes a JSON layout from r.
//
// The input must be a JSON object with "name", "technology", "units" and a
// "root" node. Each node carries optional "polygons", "ports" and
// "children" arrays; children pair a nested node with a placement.
//
// ReadJSON returns an error if the JSON is malformed or if any node or
// port is missing its name. Errors are wrapped with context describing
// which node caused the problem.
//
// The returned layout is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Layout, error) {
	var data layoutJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	root, err := nodeFromJSON(data.Root)
	if err != nil {
		return nil, err
	}
	return &Layout{
		Name:       data.Name,
		Technology: data.Technology,
		Units:      data.Units,
		Root:       root,
	}, nil
}

// ImportJSON reads a JSON file at path and returns the decoded layout.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
