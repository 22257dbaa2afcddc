// Package service ties the entity loader, the grouping engine, and the
// view cache together behind the consumer-facing operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/voyagen/channeldex/internal/cache"
	"github.com/voyagen/channeldex/internal/catalog"
	"github.com/voyagen/channeldex/internal/loader"
	"github.com/voyagen/channeldex/internal/models"
)

// ErrAborted marks a load that was superseded by a source switch. It
// means "no result", not a data failure; consumers drop the request
// instead of surfacing an error.
var ErrAborted = errors.New("load aborted")

// Options tunes one view request.
type Options struct {
	TTL       time.Duration // cache TTL override; 0 uses the configured default
	Unlimited bool          // disables the playlist grouping caps
}

// Aggregator serves grouped views through the two-tier cache,
// de-duplicating concurrent computations per view key so overlapping
// requests share one underlying join.
type Aggregator struct {
	cache  *cache.ViewCache
	engine *catalog.Engine

	group singleflight.Group

	mu          sync.Mutex
	loader      loader.Loader
	cancelFetch context.CancelFunc
}

// New creates an aggregator over l.
func New(l loader.Loader, c *cache.ViewCache, e *catalog.Engine) *Aggregator {
	return &Aggregator{cache: c, engine: e, loader: l}
}

// GetView returns the grouped view for viewType, serving a fresh cache
// entry when one exists and otherwise performing the full join exactly
// once per key regardless of how many callers are waiting on it.
func (a *Aggregator) GetView(ctx context.Context, viewType models.ViewType, opts Options) (*models.GroupedView, error) {
	if viewType != models.ViewCountry && viewType != models.ViewCategory {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnsupportedViewType, viewType)
	}
	key := string(viewType)
	if v, ok := a.cache.Get(ctx, key); ok {
		if gv, ok := v.(*models.GroupedView); ok {
			return gv, nil
		}
	}

	res, err, _ := a.group.Do(key, func() (any, error) {
		// A racing caller may have populated the cache while this call
		// waited for the flight slot.
		if v, ok := a.cache.Get(ctx, key); ok {
			if gv, ok := v.(*models.GroupedView); ok {
				return gv, nil
			}
		}
		coll, err := a.load(ctx)
		if err != nil {
			return nil, err
		}
		gv, err := a.engine.BuildView(coll, viewType)
		if err != nil {
			return nil, err
		}
		a.cache.Set(ctx, key, gv, opts.TTL)
		a.cache.Set(ctx, cache.KeyStats, &gv.Stats, opts.TTL)
		return gv, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return res.(*models.GroupedView), nil
}

// GetStats returns the aggregate stats block, cached under its own key.
func (a *Aggregator) GetStats(ctx context.Context, opts Options) (*models.Stats, error) {
	if v, ok := a.cache.Get(ctx, cache.KeyStats); ok {
		if st, ok := v.(*models.Stats); ok {
			return st, nil
		}
	}
	res, err, _ := a.group.Do(cache.KeyStats, func() (any, error) {
		coll, err := a.load(ctx)
		if err != nil {
			return nil, err
		}
		st := a.engine.Stats(coll, catalog.BuildIndexes(coll))
		a.cache.Set(ctx, cache.KeyStats, &st, opts.TTL)
		return &st, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return res.(*models.Stats), nil
}

// Search runs the substring scan over the requested view, computing or
// reusing the view through the normal cache path.
func (a *Aggregator) Search(ctx context.Context, viewType models.ViewType, query string, opts Options) ([]models.SearchResult, error) {
	gv, err := a.GetView(ctx, viewType, opts)
	if err != nil {
		return nil, err
	}
	return catalog.Search(gv, query), nil
}

// SwitchSource replaces the entity loader, cancelling any in-flight
// fetch for the old source and dropping every cached view. Callers
// waiting on a cancelled flight observe ErrAborted.
func (a *Aggregator) SwitchSource(ctx context.Context, l loader.Loader) {
	a.mu.Lock()
	if a.cancelFetch != nil {
		a.cancelFetch()
		a.cancelFetch = nil
	}
	a.loader = l
	a.mu.Unlock()

	for _, key := range cache.KnownKeys {
		a.group.Forget(key)
	}
	a.cache.Clear(ctx)
}

// ClearCache drops both cache tiers unconditionally.
func (a *Aggregator) ClearCache(ctx context.Context) {
	a.cache.Clear(ctx)
}

// load fetches all collections from the current loader under a cancel
// scope that SwitchSource can abort.
func (a *Aggregator) load(ctx context.Context) (*models.Collections, error) {
	a.mu.Lock()
	fetchCtx, cancel := context.WithCancel(ctx)
	a.cancelFetch = cancel
	l := a.loader
	a.mu.Unlock()
	defer cancel()

	return l.LoadEntities(fetchCtx)
}
