package cli

import (
	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/pkg/pipeline"
)

// previewCommand creates the preview command: an SVG rendering of the
// resolved layout for quick visual inspection.
func (c *CLI) previewCommand() *cobra.Command {
	opts := convertOpts{}

	cmd := &cobra.Command{
		Use:   "preview <design.yaml>",
		Short: "Render an SVG preview of the resolved layout",
		Long: `Render the resolved layout as an SVG with one color per layer,
optionally marking component ports. The preview runs the same pipeline
as convert but writes only the SVG.

Examples:
  rfgds preview lowpass_filter.yaml
  rfgds preview amp.yaml --show-ports --scale 4 -o amp_preview.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG path")
	cmd.Flags().StringVar(&opts.technology, "technology", "", "technology name (overrides the design's choice)")
	cmd.Flags().StringVar(&opts.techFile, "tech-file", "", "TOML technology definition file")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per design unit")
	cmd.Flags().BoolVar(&opts.showPorts, "show-ports", false, "mark component ports")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, designPath string, opts *convertOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.pipelineOptions(designPath)
	popts.Formats = []string{pipeline.FormatSVG}

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = outputBase("", designPath) + ".svg"
	}
	paths, err := writeArtifacts(result.Artifacts, output, designPath)
	if err != nil {
		return err
	}

	printSuccess("Previewed %s", StyleValue.Render(result.Design.Name))
	printStats(result.Stats.Components, result.Stats.Polygons, result.Stats.Ports, result.CacheInfo.LayoutHit)
	for _, path := range paths {
		printFile(path)
	}
	return nil
}
