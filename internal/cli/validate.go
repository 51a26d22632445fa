package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/pipeline"
	"github.com/rfgds/rfgds/pkg/resolve"
)

// validateCommand creates the validate command: schema checks plus a
// placement dry-run, with every problem reported in one pass.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		technology   string
		techFile     string
		matingOffset float64
		tolerance    float64
	)

	cmd := &cobra.Command{
		Use:   "validate <design.yaml>",
		Short: "Validate a design without writing any output",
		Long: `Validate a design: schema structure, component parameters, layer
mappings, and placement feasibility (anchors, connectivity, cycle
consistency). All problems are collected and listed together rather
than stopping at the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				DesignPath:   args[0],
				Technology:   technology,
				TechFile:     techFile,
				MatingOffset: matingOffset,
				Tolerance:    tolerance,
			}
			return c.runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&technology, "technology", "", "technology name (overrides the design's choice)")
	cmd.Flags().StringVar(&techFile, "tech-file", "", "TOML technology definition file")
	cmd.Flags().Float64Var(&matingOffset, "mating-offset", 0, "port-mating rotation offset in degrees (default 180)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "cycle-consistency tolerance in design units")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, opts pipeline.Options) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	prog := newProgress(c.Logger)

	d, t, _, err := runner.Parse(cmd.Context(), opts)
	if err != nil {
		reportProblems("Design is invalid", err)
		return errSilent
	}
	printInfo("Checking %s (%d components, technology %s)", StyleValue.Render(d.Name), len(d.Components), t.Name)

	// Generators and the resolver each collect every independent
	// failure before returning, so one run reports all of them.
	var problems *multierror.Error
	var overlaps []layout.Overlap

	cells, err := runner.GenerateCells(cmd.Context(), d, t, opts)
	if err != nil {
		problems = multierror.Append(problems, err)
	}

	if cells != nil {
		placements, err := resolve.Placements(d, cells, opts.ResolveOptions())
		if err != nil {
			problems = multierror.Append(problems, err)
		}
		if placements != nil {
			l, err := layout.Assemble(d, cells, placements)
			if err != nil {
				problems = multierror.Append(problems, err)
			}
			if l != nil {
				overlaps = l.Overlaps()
			}
		}
	}

	if err := problems.ErrorOrNil(); err != nil {
		reportProblems(fmt.Sprintf("Design %s is invalid", d.Name), err)
		return errSilent
	}

	// Overlapping bounding boxes are worth a look but are often
	// intentional, so they warn instead of failing validation.
	for _, o := range overlaps {
		printWarning("%s", o)
	}

	prog.done(fmt.Sprintf("Validated %d components", len(d.Components)))
	printSuccess("Design %s is valid", StyleValue.Render(d.Name))
	return nil
}

// errSilent signals a failed validation whose details were already
// printed, so only the short failure line reaches the shell.
var errSilent = errors.New("validation failed")

// reportProblems prints the heading and one line per collected problem,
// flattening aggregated errors and assembler violation lists.
func reportProblems(heading string, err error) {
	printError("%s", heading)
	for _, problem := range flattenErrors(err) {
		var verr *layout.ValidationError
		if errors.As(problem, &verr) {
			for _, v := range verr.Violations {
				printDetail("%s", v)
			}
			continue
		}
		printDetail("%s", problem)
	}
}

// flattenErrors expands nested multierror aggregates into a flat list.
func flattenErrors(err error) []error {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var out []error
		for _, e := range merr.Errors {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	return []error{err}
}
