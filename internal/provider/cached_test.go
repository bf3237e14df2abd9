package provider

import (
	"context"
	"testing"

	"github.com/cattychan/stock-scanner/internal/model"
)

type fakeCache struct {
	entries map[string]*model.BarSeries
	sets    int
}

func (f *fakeCache) GetSeries(ctx context.Context, ticker, window string) (*model.BarSeries, bool) {
	s, ok := f.entries[ticker+":"+window]
	return s, ok
}

func (f *fakeCache) SetSeries(ctx context.Context, ticker, window string, series *model.BarSeries) {
	f.entries[ticker+":"+window] = series
	f.sets++
}

type countingProvider struct {
	calls  int
	series *model.BarSeries
}

func (p *countingProvider) DailyBars(ctx context.Context, ticker string, lookback Lookback) (*model.BarSeries, error) {
	p.calls++
	return p.series, nil
}

func TestCached_ReadThrough(t *testing.T) {
	inner := &countingProvider{series: &model.BarSeries{Ticker: "AAPL"}}
	cache := &fakeCache{entries: map[string]*model.BarSeries{}}
	cached := NewCached(inner, cache)
	hits := 0
	cached.OnHit(func() { hits++ })

	ctx := context.Background()
	if _, err := cached.DailyBars(ctx, "AAPL", Lookback3Month); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := cached.DailyBars(ctx, "AAPL", Lookback3Month); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache fill, got %d", cache.sets)
	}
	if hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", hits)
	}

	// Different lookbacks are distinct entries.
	if _, err := cached.DailyBars(ctx, "AAPL", Lookback1Year); err != nil {
		t.Fatalf("year fetch: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls after new lookback, got %d", inner.calls)
	}
}
