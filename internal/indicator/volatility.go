package indicator

import (
	"math"

	"github.com/cattychan/stock-scanner/internal/model"
)

// tradingDaysPerYear is the annualization factor for daily returns.
const tradingDaysPerYear = 252

// Volatility calculates annualized realized volatility: the sample
// standard deviation of daily percent returns over the full fetched
// window, scaled by sqrt(252) and expressed in percent.
//
// Returns are accumulated with Welford's algorithm so the window can be
// any length without storing it.
type Volatility struct {
	prevClose float64
	seen      int
	n         int     // number of returns
	mean      float64 // running mean of returns
	m2        float64 // running sum of squared deviations
}

// NewVolatility creates a realized-volatility indicator.
func NewVolatility() *Volatility { return &Volatility{} }

func (v *Volatility) Name() string { return "VOLATILITY" }

func (v *Volatility) Update(bar model.Bar) {
	price := bar.Close
	v.seen++
	if v.seen == 1 {
		v.prevClose = price
		return
	}

	if v.prevClose != 0 {
		r := (price - v.prevClose) / v.prevClose
		v.n++
		delta := r - v.mean
		v.mean += delta / float64(v.n)
		v.m2 += delta * (r - v.mean)
	}
	v.prevClose = price
}

func (v *Volatility) Value() float64 {
	if !v.Ready() {
		return 0
	}
	variance := v.m2 / float64(v.n-1)
	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100
}

// Ready needs at least two returns for a sample standard deviation.
func (v *Volatility) Ready() bool { return v.n >= 2 }
