package pipeline

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RebuildAll regenerates every persisted set with bounded parallelism,
// then rebuilds the catalog once. Per-set failures are collected, not
// fatal; the returned results are sorted by slug.
func (o *Orchestrator) RebuildAll(ctx context.Context) ([]*Result, error) {
	names, err := o.store.List()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results []*Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallel)

	for _, name := range names {
		name := name
		g.Go(func() error {
			res, err := o.regenerate(gctx, name, false)
			if err != nil {
				res = &Result{Slug: name}
				res.Warn("regenerate_failed: %v", err)
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Slug < results[j].Slug })

	if err := o.RebuildCatalog(); err != nil {
		return results, err
	}
	return results, nil
}
