package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rfgds/rfgds/pkg/cache"
	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/observability"
	"github.com/rfgds/rfgds/pkg/resolve"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → generate → resolve → assemble →
// render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.DesignPath)
	d, t, raw, err := Parse(opts)
	result.Stats.ParseTime = time.Since(parseStart)
	observability.Pipeline().OnParseComplete(ctx, designName(d), componentCount(d), result.Stats.ParseTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Design = d
	result.Technology = t
	result.Stats.Components = len(d.Components)

	r.Logger.Info("parsed design",
		"design", d.Name,
		"components", len(d.Components),
		"technology", t.Name,
		"duration", result.Stats.ParseTime)

	// Stages 2-4: Generate, resolve, assemble - or rehydrate the whole
	// layout when an identical design has been converted before.
	l, err := r.buildLayout(ctx, d, t, raw, opts, result)
	if err != nil {
		return nil, err
	}
	result.Layout = l

	flat := l.Root.Flatten()
	result.Stats.Polygons = flat.Count()
	result.Stats.Ports = len(l.ComponentPorts())

	// Stage 5: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, d, t, opts, result.LayoutHash)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// buildLayout produces the assembled layout, preferring a cached one.
// The cache key covers the raw design source, the technology, and the
// resolver options, so any change to the inputs misses cleanly.
func (r *Runner) buildLayout(ctx context.Context, d *design.Design, t *tech.Technology, raw []byte, opts Options, result *Result) (*layout.Layout, error) {
	hashInput := make([]byte, 0, len(raw)+len(t.Name)+1)
	hashInput = append(hashInput, raw...)
	hashInput = append(hashInput, 0)
	hashInput = append(hashInput, t.Name...)
	designHash := cache.Hash(hashInput)
	layoutKey := r.Keyer.LayoutKey(designHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, layoutKey); err == nil && hit {
			if l, err := layout.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.CacheInfo.LayoutHit = true
				result.LayoutHash = cache.Hash(data)
				r.Logger.Info("reused cached layout", "design", d.Name)
				return l, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Stage 2: Generate
	generateStart := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, d.Name, len(d.Components))
	cells, hits, misses, err := r.GenerateCellsWithCacheInfo(ctx, d, t, opts)
	result.Stats.GenerateTime = time.Since(generateStart)
	observability.Pipeline().OnGenerateComplete(ctx, d.Name, len(cells), result.Stats.GenerateTime, err)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.CacheInfo.CellHits = hits
	result.CacheInfo.CellMisses = misses

	r.Logger.Info("generated cells",
		"cells", len(cells),
		"cached", hits,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Resolve
	resolveStart := time.Now()
	observability.Pipeline().OnResolveStart(ctx, d.Name, len(d.Components))
	placements, err := resolve.Placements(d, cells, opts.ResolveOptions())
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Pipeline().OnResolveComplete(ctx, d.Name, len(placements), result.Stats.ResolveTime, err)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	r.Logger.Info("resolved placements",
		"placed", len(placements),
		"duration", result.Stats.ResolveTime)

	// Stage 4: Assemble
	assembleStart := time.Now()
	observability.Pipeline().OnAssembleStart(ctx, d.Name)
	l, err := layout.Assemble(d, cells, placements)
	result.Stats.AssembleTime = time.Since(assembleStart)
	observability.Pipeline().OnAssembleComplete(ctx, d.Name, result.Stats.AssembleTime, err)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	var buf bytes.Buffer
	if err := layout.WriteJSON(l, &buf); err == nil {
		data := buf.Bytes()
		result.LayoutHash = cache.Hash(data)
		if r.Cache.Set(ctx, layoutKey, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, nil
}

// Parse loads and validates the design and technology for these options.
// It is a convenience wrapper over the package-level [Parse] that applies
// the runner's logger.
func (r *Runner) Parse(ctx context.Context, opts Options) (*design.Design, *tech.Technology, []byte, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, nil, nil, err
	}
	r.applyLogger(&opts)
	return Parse(opts)
}

// RenderWithCacheInfo renders artifacts with per-format caching and
// reports whether every requested format came from cache.
//
// layoutHash keys the artifacts; pass the hash from the pipeline result,
// or empty to disable artifact caching for this call.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, d *design.Design, t *tech.Technology, opts Options, layoutHash string) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if layoutHash == "" || opts.Refresh {
		artifacts, err := Render(l, d, t, opts)
		return artifacts, false, err
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := Render(l, d, t, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that renders without artifact caching.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, d *design.Design, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, d, nil, opts, "")
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func designName(d *design.Design) string {
	if d == nil {
		return ""
	}
	return d.Name
}

func componentCount(d *design.Design) int {
	if d == nil {
		return 0
	}
	return len(d.Components)
}
