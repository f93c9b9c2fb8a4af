package reconciler

import (
	"context"
	"sync"

	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

type whyResult struct {
	ws  *domain.Workspace
	err error
}

// WhyLookup memoises why queries for one directory during a run.
type WhyLookup struct {
	pm    ports.PackageManager
	dir   string
	limit int

	mu      sync.Mutex
	results map[string]whyResult
}

// NewWhyLookup creates a lookup running queries in dir with at most limit in flight during Prefetch.
func NewWhyLookup(pm ports.PackageManager, dir string, limit int) *WhyLookup {
	if limit < 1 {
		limit = 1
	}
	return &WhyLookup{
		pm:      pm,
		dir:     dir,
		limit:   limit,
		results: make(map[string]whyResult),
	}
}

// Lookup returns the why output for name, querying the package manager once per name.
func (w *WhyLookup) Lookup(ctx context.Context, name string) (*domain.Workspace, error) {
	w.mu.Lock()
	res, ok := w.results[name]
	w.mu.Unlock()
	if ok {
		return res.ws, res.err
	}

	ws, err := w.pm.Why(ctx, w.dir, name)
	w.store(name, ws, err)
	return ws, err
}

// Prefetch queries all names concurrently. Per-name failures are cached and
// surface from Lookup, so callers still see them in their own order.
func (w *WhyLookup) Prefetch(ctx context.Context, names []string) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)

	for _, name := range names {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			w.mu.Lock()
			_, done := w.results[name]
			w.mu.Unlock()
			if done {
				return nil
			}
			ws, err := w.pm.Why(groupCtx, w.dir, name)
			w.store(name, ws, err)
			return nil
		})
	}

	return g.Wait()
}

func (w *WhyLookup) store(name string, ws *domain.Workspace, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results[name] = whyResult{ws: ws, err: err}
}
