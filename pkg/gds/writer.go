package gds

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

// DefaultDBUnit is the database unit in design units. At 0.001 a
// micrometer design snaps to a 1 nm grid.
const DefaultDBUnit = 0.001

// metersPerUnit maps layout unit names to their size in meters.
var metersPerUnit = map[string]float64{
	"um": 1e-6,
	"nm": 1e-9,
	"mm": 1e-3,
}

// Options configures the GDSII writer.
type Options struct {
	// DBUnit is the database unit in design units.
	// Defaults to [DefaultDBUnit].
	DBUnit float64

	// Modified is the timestamp written into the library and structure
	// headers. Defaults to the current time; fix it for reproducible
	// output.
	Modified time.Time

	// TextLayer, when set, makes the writer label every port with a TEXT
	// element carrying the port name at the port position. Pass the
	// technology's text layer; leave nil to omit labels.
	TextLayer *tech.LayerID
}

func (o Options) withDefaults() Options {
	if o.DBUnit <= 0 {
		o.DBUnit = DefaultDBUnit
	}
	if o.Modified.IsZero() {
		o.Modified = time.Now()
	}
	return o
}

// Write encodes the layout as a GDSII stream onto w.
//
// Every node in the layout tree becomes one structure; a node referenced
// from several parents is written once and referenced by SREF from each.
// Structures are emitted children-first, so every SNAME refers to a
// structure already defined in the stream.
func Write(l *layout.Layout, w io.Writer, opts Options) error {
	if l == nil || l.Root == nil {
		return fmt.Errorf("gds: layout has no root node")
	}
	opts = opts.withDefaults()

	meters, ok := metersPerUnit[l.Units]
	if !ok {
		return fmt.Errorf("gds: unknown layout units %q", l.Units)
	}

	structs, names, err := collectStructures(l.Root)
	if err != nil {
		return err
	}

	rw := &recordWriter{w: w}
	ts := timestamp(opts.Modified)

	rw.int16s(recHeader, streamVersion)
	rw.int16s(recBgnLib, ts...)
	rw.str(recLibName, sanitizeName(l.Name))
	// User units per database unit, then meters per database unit.
	rw.real64s(recUnits, opts.DBUnit, opts.DBUnit*meters)

	for _, s := range structs {
		if err := writeStructure(rw, s, names, ts, opts); err != nil {
			return err
		}
	}

	rw.empty(recEndLib)
	return rw.err
}

// Encode renders the layout to an in-memory GDSII stream.
func Encode(l *layout.Layout, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(l, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportGDS writes the layout to a GDSII file at path with default
// options.
func ExportGDS(l *layout.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(l, f, Options{})
}

// structure pairs a node with its unique stream name.
type structure struct {
	name string
	node *layout.Node
}

// collectStructures walks the tree depth-first, children before parents,
// deduplicating shared nodes by identity and resolving name collisions
// with numeric suffixes. The root is always last.
func collectStructures(root *layout.Node) ([]structure, map[*layout.Node]string, error) {
	var out []structure
	names := make(map[*layout.Node]string)
	taken := make(map[string]bool)

	var walk func(n *layout.Node) error
	walk = func(n *layout.Node) error {
		if _, seen := names[n]; seen {
			return nil
		}
		if n.Name == "" {
			return fmt.Errorf("gds: node without a name")
		}
		// Reserve the name before descending so a self-referential cycle
		// fails fast instead of recursing forever.
		name := sanitizeName(n.Name)
		for i := 2; taken[name]; i++ {
			name = fmt.Sprintf("%s_%d", sanitizeName(n.Name), i)
		}
		taken[name] = true
		names[n] = name

		for _, c := range n.Children {
			if c.Node == n {
				return fmt.Errorf("gds: node %s references itself", n.Name)
			}
			if err := walk(c.Node); err != nil {
				return err
			}
		}
		out = append(out, structure{name: name, node: n})
		return nil
	}
	if err := walk(root); err != nil {
		return nil, nil, err
	}
	return out, names, nil
}

func writeStructure(rw *recordWriter, s structure, names map[*layout.Node]string, ts []int16, opts Options) error {
	rw.int16s(recBgnStr, ts...)
	rw.str(recStrName, s.name)

	for _, id := range s.node.Polygons.Layers() {
		if id.Layer < 0 || id.Layer > math.MaxInt16 || id.Datatype < 0 || id.Datatype > math.MaxInt16 {
			return fmt.Errorf("gds: structure %s: layer %s out of range", s.name, id)
		}
		for _, poly := range s.node.Polygons[id] {
			if len(poly) < 3 {
				return fmt.Errorf("gds: structure %s: polygon on layer %s has %d points", s.name, id, len(poly))
			}
			if len(poly)+1 > maxXYPairs {
				return fmt.Errorf("gds: structure %s: polygon on layer %s has %d points, max %d", s.name, id, len(poly), maxXYPairs-1)
			}
			xy := make([]int32, 0, 2*(len(poly)+1))
			for _, p := range poly {
				x, y, err := dbCoords(p.X, p.Y, opts.DBUnit)
				if err != nil {
					return fmt.Errorf("gds: structure %s: %w", s.name, err)
				}
				xy = append(xy, x, y)
			}
			// GDSII boundaries are explicitly closed.
			xy = append(xy, xy[0], xy[1])

			rw.empty(recBoundary)
			rw.int16s(recLayer, int16(id.Layer))
			rw.int16s(recDatatype, int16(id.Datatype))
			rw.int32s(recXY, xy...)
			rw.empty(recEndEl)
		}
	}

	if opts.TextLayer != nil {
		for _, name := range s.node.Ports.Names() {
			p := s.node.Ports[name]
			x, y, err := dbCoords(p.Position.X, p.Position.Y, opts.DBUnit)
			if err != nil {
				return fmt.Errorf("gds: structure %s: port %s: %w", s.name, name, err)
			}
			rw.empty(recText)
			rw.int16s(recLayer, int16(opts.TextLayer.Layer))
			rw.int16s(recTextType, int16(opts.TextLayer.Datatype))
			// Middle-center presentation.
			rw.int16s(recPresent, 0x0005)
			rw.int32s(recXY, x, y)
			rw.str(recString, name)
			rw.empty(recEndEl)
		}
	}

	for _, c := range s.node.Children {
		x, y, err := dbCoords(c.Placement.Position.X, c.Placement.Position.Y, opts.DBUnit)
		if err != nil {
			return fmt.Errorf("gds: structure %s: reference to %s: %w", s.name, c.Node.Name, err)
		}
		rw.empty(recSRef)
		rw.str(recSName, names[c.Node])
		if rot := c.Placement.Normalize().Rotation; rot != 0 {
			rw.int16s(recSTrans, 0)
			rw.real64s(recAngle, rot)
		}
		rw.int32s(recXY, x, y)
		rw.empty(recEndEl)
	}

	rw.empty(recEndStr)
	return rw.err
}

// dbCoords converts a point from design units to database units, checking
// that the result fits the int32 coordinate space of the format.
func dbCoords(x, y, dbUnit float64) (int32, int32, error) {
	xi := math.Round(x / dbUnit)
	yi := math.Round(y / dbUnit)
	if xi < math.MinInt32 || xi > math.MaxInt32 || yi < math.MinInt32 || yi > math.MaxInt32 {
		return 0, 0, fmt.Errorf("coordinate (%g, %g) overflows database units", x, y)
	}
	return int32(xi), int32(yi), nil
}

// timestamp encodes a time as the twelve int16 fields of the BGNLIB and
// BGNSTR records: modification time followed by access time.
func timestamp(t time.Time) []int16 {
	six := []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
	return append(six, six...)
}

// sanitizeName maps a node name onto the GDSII structure name alphabet,
// replacing anything outside [A-Za-z0-9_?$] with an underscore.
func sanitizeName(name string) string {
	if name == "" {
		return "TOP"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '?', r == '$':
			return r
		default:
			return '_'
		}
	}, name)
}
