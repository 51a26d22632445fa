// Package cli implements the rfgds command-line interface.
//
// This package provides commands for converting declarative RF circuit
// designs into GDSII layouts, validating designs, rendering previews
// and connectivity graphs, browsing the component catalog, managing
// the conversion cache, and serving the pipeline over HTTP. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Run the full pipeline and write GDS/SVG/JSON/DOT artifacts
//   - validate: Check a design's schema and placement feasibility
//   - preview: Render an SVG preview of the resolved layout
//   - graph: Render the design's connectivity graph
//   - components: Browse the supported component generators
//   - cache: Manage the conversion cache
//   - serve: Run the HTTP conversion service
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/pkg/buildinfo"
	"github.com/rfgds/rfgds/pkg/cache"
	"github.com/rfgds/rfgds/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "rfgds"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "rfgds",
		Short:        "rfgds converts declarative RF circuit designs to GDSII layouts",
		Long:         `rfgds is a CLI tool for converting YAML descriptions of RF circuits (transmission lines, inductors, capacitors, dividers, couplers) into fabrication-ready GDSII layouts, with placement resolved from port-to-port connections.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/rfgds/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatGDS}
	}
	return strings.Split(s, ",")
}

// outputBase derives the base output path for artifact files. If output
// is empty, the design file's path with its extension stripped is used;
// an output with a known format extension has that extension stripped.
func outputBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
