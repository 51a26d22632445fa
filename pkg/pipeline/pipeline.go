// Package pipeline provides the core conversion pipeline.
//
// This package implements the complete parse → generate → resolve →
// assemble → render pipeline that can be used by CLI and API components.
// By centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Parse: Load and validate the design, resolve the technology
//  2. Generate: Build one geometry cell per component
//  3. Resolve: Derive a placement for every component from connections
//  4. Assemble: Validate connectivity and build the layout tree
//  5. Render: Emit output in various formats (GDS, SVG, JSON, DOT, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DesignPath: "lowpass_filter.yaml",
//	    Formats:    []string{"gds", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gds := result.Artifacts["gds"]
//
// Run individual stages:
//
//	// Parse only
//	d, t, _, err := runner.Parse(ctx, opts)
//
//	// Generate cells for a parsed design
//	cells, err := runner.GenerateCells(ctx, d, t, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, l, d, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rfgds/rfgds/pkg/cache"
	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/gds"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/resolve"
	"github.com/rfgds/rfgds/pkg/tech"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultParallelism bounds how many component cells are generated
	// concurrently. Cells are independent, so this is a pure fan-out; the
	// bound keeps peak memory predictable for large designs.
	DefaultParallelism = 4

	// DefaultDBUnit is the GDS database unit in design units.
	DefaultDBUnit = gds.DefaultDBUnit

	// DefaultScale is the SVG preview scale in pixels per design unit.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatGDS  = "gds"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatGDS:  true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of DesignPath or DesignSource must be
	// set; DesignSource wins when both are.
	DesignPath   string `json:"design_path,omitempty"`
	DesignSource []byte `json:"design_source,omitempty"`

	// Technology overrides the technology named in the design.
	Technology string `json:"technology,omitempty"`

	// TechFile loads a technology definition from a TOML file and uses
	// it regardless of what the design names.
	TechFile string `json:"tech_file,omitempty"`

	// Resolve options
	MatingOffset float64 `json:"mating_offset,omitempty"`
	Tolerance    float64 `json:"tolerance,omitempty"`

	// Generate options
	Parallelism int  `json:"parallelism,omitempty"`
	Refresh     bool `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	DBUnit    float64  `json:"db_unit,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	ShowPorts bool     `json:"show_ports,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Design is the parsed design.
	Design *design.Design

	// Technology is the resolved technology.
	Technology *tech.Technology

	// Layout is the assembled layout tree.
	Layout *layout.Layout

	// LayoutHash is the content hash of the layout JSON.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components   int
	Polygons     int
	Ports        int
	ParseTime    time.Duration
	GenerateTime time.Duration
	ResolveTime  time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit  bool // Whether the full layout came from cache
	CellHits   int  // Cells rehydrated from cache
	CellMisses int  // Cells generated fresh
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: gds, svg, json, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetResolveDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.DesignPath == "" && len(o.DesignSource) == 0 {
		return fmt.Errorf("design_path or design_source is required")
	}

	if o.Parallelism <= 0 {
		o.Parallelism = DefaultParallelism
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetResolveDefaults sets default values for placement resolution.
func (o *Options) SetResolveDefaults() {
	if o.MatingOffset == 0 {
		o.MatingOffset = resolve.DefaultMatingOffset
	}
	if o.Tolerance == 0 {
		o.Tolerance = resolve.DefaultTolerance
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGDS}
	}
	if o.DBUnit <= 0 {
		o.DBUnit = DefaultDBUnit
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ResolveOptions returns the resolver options for this run.
func (o *Options) ResolveOptions() resolve.Options {
	return resolve.Options{
		MatingOffset: o.MatingOffset,
		Tolerance:    o.Tolerance,
	}
}

// LayoutKeyOpts returns cache key options for the resolved layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MatingOffset: o.MatingOffset,
		Tolerance:    o.Tolerance,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatGDS:
		opts.DBUnit = o.DBUnit
	case FormatSVG:
		opts.Scale = o.Scale
		opts.ShowPorts = o.ShowPorts
	case FormatDOT, FormatPNG:
		opts.Detailed = o.Detailed
	}
	return opts
}
