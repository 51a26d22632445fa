package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/rfgds/rfgds/pkg/cache"
	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/generate"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/observability"
	"github.com/rfgds/rfgds/pkg/tech"
)

// GenerateCellsWithCacheInfo builds the geometry cell for every component
// and reports cache hit and miss counts.
//
// Cells are independent of each other, so generation fans out across
// opts.Parallelism goroutines. A failing component does not stop the
// others: every bad component is reported, in design order, in one
// aggregated error.
func (r *Runner) GenerateCellsWithCacheInfo(ctx context.Context, d *design.Design, t *tech.Technology, opts Options) (map[string]*layout.Node, int, int, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, 0, 0, err
	}

	var (
		mu           sync.Mutex
		cells        = make(map[string]*layout.Node, len(d.Components))
		hits, misses int
	)
	buildErrs := make([]error, len(d.Components))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)

	for i, c := range d.Components {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			node, hit, err := r.generateCell(gctx, c, t, opts)
			if err != nil {
				buildErrs[i] = fmt.Errorf("component %s: %w", c.Name, err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if hit {
				hits++
			} else {
				misses++
			}
			cells[c.Name] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, hits, misses, err
	}

	var errs *multierror.Error
	for _, err := range buildErrs {
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, hits, misses, err
	}
	return cells, hits, misses, nil
}

// GenerateCells is a convenience wrapper that discards the cache counters.
func (r *Runner) GenerateCells(ctx context.Context, d *design.Design, t *tech.Technology, opts Options) (map[string]*layout.Node, error) {
	cells, _, _, err := r.GenerateCellsWithCacheInfo(ctx, d, t, opts)
	return cells, err
}

// generateCell builds or rehydrates one component's cell. Cached cells
// are keyed by (technology, type, parameters), so equal components share
// an entry; the node is renamed to this component after rehydration.
func (r *Runner) generateCell(ctx context.Context, c *design.Component, t *tech.Technology, opts Options) (*layout.Node, bool, error) {
	key := r.Keyer.CellKey(t.Name, c.Type, c.Parameters)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if node, err := layout.UnmarshalNode(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "cell")
				node.Name = c.Name
				return node, true, nil
			}
			// Undecodable entry: fall through and regenerate.
		}
		observability.Cache().OnCacheMiss(ctx, "cell")
	}

	node, err := generate.Component(c, t)
	if err != nil {
		return nil, false, err
	}

	if data, err := layout.MarshalNode(node); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLCell) == nil {
			observability.Cache().OnCacheSet(ctx, "cell", len(data))
		}
	}
	return node, false, nil
}
