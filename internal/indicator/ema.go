package indicator

import (
	"fmt"

	"github.com/cattychan/stock-scanner/internal/model"
)

// EMA calculates the Exponential Moving Average with smoothing factor
// 2/(period+1), seeded with the SMA of the first period closes. The same
// definition is used for every EMA in the battery (fast and slow MACD
// lines included) so that crossover timing stays internally consistent.
// O(1) per update — no window storage needed.
type EMA struct {
	period     int
	multiplier float64
	current    float64
	count      int
	sum        float64
}

// NewEMA creates an EMA indicator with the given period.
func NewEMA(period int) *EMA {
	return &EMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *EMA) Name() string { return fmt.Sprintf("EMA_%d", e.period) }

func (e *EMA) Update(bar model.Bar) {
	e.push(bar.Close)
}

// push feeds a raw value; MACD reuses it to build an EMA over a derived
// series instead of closes.
func (e *EMA) push(v float64) {
	e.count++

	if e.count <= e.period {
		// Accumulate for initial SMA seed
		e.sum += v
		if e.count == e.period {
			e.current = e.sum / float64(e.period)
		}
		return
	}

	e.current = (v * e.multiplier) + (e.current * (1 - e.multiplier))
}

func (e *EMA) Value() float64 { return e.current }
func (e *EMA) Ready() bool    { return e.count >= e.period }
