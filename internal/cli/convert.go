package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output       string  // output file or base path
	formats      string  // comma-separated output formats
	technology   string  // technology name override
	techFile     string  // TOML technology file
	matingOffset float64 // port-mating rotation offset in degrees
	tolerance    float64 // cycle-consistency tolerance
	parallelism  int     // concurrent cell generation bound
	dbUnit       float64 // GDS database unit in design units
	scale        float64 // SVG pixels per design unit
	showPorts    bool    // mark ports in the SVG preview
	detailed     bool    // detailed connectivity graph labels
	noCache      bool    // disable the conversion cache
	refresh      bool    // bypass cached entries
}

// convertCommand creates the convert command: the full design-to-GDS
// pipeline with artifact output.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert <design.yaml>",
		Short: "Convert a YAML design into a GDSII layout",
		Long: `Convert a declarative YAML design into a GDSII layout.

The pipeline generates geometry for every component, resolves placements
from port-to-port connections, assembles the layout tree, and writes the
requested artifact formats next to the design file (or at --output).

Examples:
  rfgds convert lowpass_filter.yaml
  rfgds convert amp.yaml -f gds,svg,json -o build/amp
  rfgds convert amp.yaml --technology generic --show-ports -f svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): gds (default), svg, json, dot, png (comma-separated)")
	cmd.Flags().StringVar(&opts.technology, "technology", "", "technology name (overrides the design's choice)")
	cmd.Flags().StringVar(&opts.techFile, "tech-file", "", "TOML technology definition file")
	cmd.Flags().Float64Var(&opts.matingOffset, "mating-offset", 0, "port-mating rotation offset in degrees (default 180)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "cycle-consistency tolerance in design units")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 0, "concurrent cell generation bound")
	cmd.Flags().Float64Var(&opts.dbUnit, "db-unit", 0, "GDS database unit in design units")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "SVG pixels per design unit")
	cmd.Flags().BoolVar(&opts.showPorts, "show-ports", false, "mark component ports in the SVG preview")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "detailed labels in connectivity graphs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

func (o *convertOpts) pipelineOptions(designPath string) pipeline.Options {
	return pipeline.Options{
		DesignPath:   designPath,
		Technology:   o.technology,
		TechFile:     o.techFile,
		MatingOffset: o.matingOffset,
		Tolerance:    o.tolerance,
		Parallelism:  o.parallelism,
		Refresh:      o.refresh,
		Formats:      parseFormats(o.formats),
		DBUnit:       o.dbUnit,
		Scale:        o.scale,
		ShowPorts:    o.showPorts,
		Detailed:     o.detailed,
	}
}

func (c *CLI) runConvert(cmd *cobra.Command, designPath string, opts *convertOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Converting %s...", filepath.Base(designPath)))
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), opts.pipelineOptions(designPath))
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Conversion failed: %v", err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Converted %s (%s)", StyleValue.Render(result.Design.Name), result.Technology.Name))
	printStats(result.Stats.Components, result.Stats.Polygons, result.Stats.Ports, result.CacheInfo.LayoutHit)

	paths, err := writeArtifacts(result.Artifacts, opts.output, designPath)
	if err != nil {
		return err
	}
	for _, path := range paths {
		printFile(path)
	}

	if len(result.Artifacts) == 1 && result.Artifacts[pipeline.FormatGDS] != nil {
		printNewline()
		printNextStep("Preview the layout", fmt.Sprintf("rfgds preview %s", designPath))
	}
	return nil
}

// writeArtifacts writes each rendered artifact to <base>.<format> and
// returns the written paths in format-name order.
func writeArtifacts(artifacts map[string][]byte, output, input string) ([]string, error) {
	base := outputBase(output, input)

	var paths []string
	for _, format := range []string{pipeline.FormatGDS, pipeline.FormatSVG, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatPNG} {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
