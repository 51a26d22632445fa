package graph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/rfgds/rfgds/pkg/design"
)

// Options configures connectivity diagram rendering.
type Options struct {
	// Detailed includes the component type and parameter count in node
	// labels. When false, only the component name is shown.
	Detailed bool
}

// ToDOT converts a design's connectivity to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Anchored components (those with an explicit position) are drawn with a
// bold outline and grey fill, since they are the roots the placement
// resolver grows the rest of the design from.
func ToDOT(d *design.Design, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph connectivity {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, c := range d.Components {
		attrs := fmtAttrs(c, fmtLabel(c, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range d.Components {
		for _, conn := range c.Connections {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
				c.Name, conn.Target, conn.Port+" - "+conn.TargetPort)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *design.Component, detailed bool) string {
	if !detailed {
		return c.Name
	}
	label := c.Name + "\n" + c.Type
	if len(c.Parameters) > 0 {
		label += fmt.Sprintf("\n%d params", len(c.Parameters))
	}
	if c.Placed() {
		label += fmt.Sprintf("\n@ (%g, %g)", c.Position.X, c.Position.Y)
	}
	return label
}

func fmtAttrs(c *design.Component, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c.Placed() {
		attrs = append(attrs, "fillcolor=lightgrey", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
