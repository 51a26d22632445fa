package pipeline

import (
	"bytes"
	"fmt"

	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/gds"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/render/graph"
	"github.com/rfgds/rfgds/pkg/render/preview"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Render generates output artifacts in the requested formats.
//
// GDS, SVG, and JSON are derived from the layout; DOT and PNG are
// connectivity diagrams derived from the design. The same DOT string
// backs both, so requesting dot and png renders the graph once.
func Render(l *layout.Layout, d *design.Design, t *tech.Technology, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte)
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatGDS:
			data, err = gds.Encode(l, gdsOptions(t, opts))
		case FormatSVG:
			data = preview.RenderSVG(l, svgOptions(opts)...)
		case FormatJSON:
			var buf bytes.Buffer
			err = layout.WriteJSON(l, &buf)
			data = buf.Bytes()
		case FormatDOT:
			dot = connectivityDOT(d, dot, opts)
			data = []byte(dot)
		case FormatPNG:
			dot = connectivityDOT(d, dot, opts)
			data, err = graph.RenderPNG(dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// gdsOptions maps pipeline options onto writer options, labeling ports on
// the technology's text layer when it defines one.
func gdsOptions(t *tech.Technology, opts Options) gds.Options {
	out := gds.Options{DBUnit: opts.DBUnit}
	if t != nil {
		if id, err := t.Layer(tech.RoleText); err == nil {
			out.TextLayer = &id
		}
	}
	return out
}

func svgOptions(opts Options) []preview.SVGOption {
	svgOpts := []preview.SVGOption{preview.WithScale(opts.Scale)}
	if opts.ShowPorts {
		svgOpts = append(svgOpts, preview.WithPorts())
	}
	return svgOpts
}

// connectivityDOT renders the design graph once and reuses it across the
// dot and png formats.
func connectivityDOT(d *design.Design, cached string, opts Options) string {
	if cached != "" {
		return cached
	}
	return graph.ToDOT(d, graph.Options{Detailed: opts.Detailed})
}
