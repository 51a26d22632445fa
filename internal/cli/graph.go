package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/pkg/pipeline"
	"github.com/rfgds/rfgds/pkg/render/graph"
)

// graphCommand creates the graph command: the design's component and
// connection graph rendered via Graphviz.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <design.yaml>",
		Short: "Render the design's connectivity graph",
		Long: `Render the component/connection graph of a design as DOT, SVG,
or PNG. Useful for checking connectivity before worrying about
geometry.

Examples:
  rfgds graph amp.yaml                 # amp.dot
  rfgds graph amp.yaml -f svg          # amp.svg via graphviz
  rfgds graph amp.yaml -f png --detailed -o docs/amp.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include type and parameter summaries in labels")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, designPath, output, format string, detailed bool) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	d, _, _, err := runner.Parse(cmd.Context(), pipeline.Options{DesignPath: designPath})
	if err != nil {
		return err
	}

	dot := graph.ToDOT(d, graph.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = graph.RenderSVG(dot)
	case "png":
		data, err = graph.RenderPNG(dot)
	default:
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if output == "" {
		output = outputBase("", designPath) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered connectivity graph for %s", StyleValue.Render(d.Name))
	printFile(output)
	return nil
}
