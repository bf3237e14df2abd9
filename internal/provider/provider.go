// Package provider fetches daily OHLCV bar series from a market-data
// source. Providers are collaborators: every failure mode they expose is
// converted to "skip this ticker" at the scan boundary, never a batch
// abort.
package provider

import (
	"context"
	"errors"

	"github.com/cattychan/stock-scanner/internal/model"
)

// ErrNoData indicates the source answered but had no bars for the ticker.
var ErrNoData = errors.New("no bar data")

// Lookback selects the fetch window.
type Lookback string

const (
	// Lookback3Month is the battery window: enough history for the
	// 50-day SMA with headroom.
	Lookback3Month Lookback = "3mo"

	// Lookback1Year supplies the 52-week high/low range.
	Lookback1Year Lookback = "1y"
)

// BarProvider returns the daily bars for one ticker over a lookback
// window, or ErrNoData / a transport error. Implementations must honor
// ctx cancellation and deadlines.
type BarProvider interface {
	DailyBars(ctx context.Context, ticker string, lookback Lookback) (*model.BarSeries, error)
}
