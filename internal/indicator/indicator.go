// Package indicator provides technical indicator calculations over daily
// bar data.
//
// Indicators are streaming: each Update is O(1) over a ring-buffer window,
// so a whole battery runs in a single pass over a BarSeries. An indicator
// that has not yet seen enough bars reports Ready() == false and its
// output is carried as an unavailable Value — never as a zero that could
// be mistaken for a real reading.
package indicator

import "github.com/cattychan/stock-scanner/internal/model"

// Indicator is the interface shared by all streaming indicators.
type Indicator interface {
	// Name returns the indicator name (e.g. "SMA_20", "RSI_14").
	Name() string

	// Update feeds the next bar in chronological order.
	Update(bar model.Bar)

	// Value returns the current reading. Only meaningful when Ready.
	Value() float64

	// Ready reports whether enough bars have been seen for Value to be
	// defined.
	Ready() bool
}

// Value is an indicator scalar that is either present or unavailable.
// Unavailable values must never be compared as numbers; rule evaluation
// checks OK first.
type Value struct {
	V  float64
	OK bool
}

// Of wraps a present value.
func Of(v float64) Value { return Value{V: v, OK: true} }

// Unavailable returns the absent value.
func Unavailable() Value { return Value{} }

// capture snapshots an indicator into a Value, folding Ready into OK.
func capture(ind Indicator) Value {
	if !ind.Ready() {
		return Unavailable()
	}
	return Of(ind.Value())
}
