package provider

import (
	"context"

	"github.com/cattychan/stock-scanner/internal/model"
)

// SeriesCache is the cache contract the cached provider needs. Both
// methods are best-effort; a cache that errors behaves like one that
// always misses.
type SeriesCache interface {
	GetSeries(ctx context.Context, ticker, window string) (*model.BarSeries, bool)
	SetSeries(ctx context.Context, ticker, window string, series *model.BarSeries)
}

// Cached decorates a BarProvider with a read-through series cache.
type Cached struct {
	inner BarProvider
	cache SeriesCache
	onHit func() // optional instrumentation hook
}

// NewCached wraps a provider with a cache.
func NewCached(inner BarProvider, cache SeriesCache) *Cached {
	return &Cached{inner: inner, cache: cache}
}

// OnHit registers a callback invoked on every cache hit.
func (c *Cached) OnHit(f func()) { c.onHit = f }

// DailyBars serves from the cache when possible, otherwise fetches and
// populates it. Fetch errors are returned as-is and never cached.
func (c *Cached) DailyBars(ctx context.Context, ticker string, lookback Lookback) (*model.BarSeries, error) {
	if series, ok := c.cache.GetSeries(ctx, ticker, string(lookback)); ok {
		if c.onHit != nil {
			c.onHit()
		}
		return series, nil
	}

	series, err := c.inner.DailyBars(ctx, ticker, lookback)
	if err != nil {
		return nil, err
	}
	c.cache.SetSeries(ctx, ticker, string(lookback), series)
	return series, nil
}
