package indicator

import (
	"fmt"

	"github.com/cattychan/stock-scanner/internal/model"
)

// MACD calculates Moving Average Convergence Divergence:
//
//	line      = EMA(fast) - EMA(slow)
//	signal    = EMA(signalPeriod) of the line
//	histogram = line - signal
//
// The signal EMA is only fed once the slow EMA is ready, so with the
// default 12/26/9 configuration the line is defined from bar 26 and the
// histogram from bar 34.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a MACD indicator with the given fast/slow/signal periods
// (typically 12, 26, 9).
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fast:   NewEMA(fastPeriod),
		slow:   NewEMA(slowPeriod),
		signal: NewEMA(signalPeriod),
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD_%d_%d_%d", m.fast.period, m.slow.period, m.signal.period)
}

func (m *MACD) Update(bar model.Bar) {
	m.fast.Update(bar)
	m.slow.Update(bar)
	if m.fast.Ready() && m.slow.Ready() {
		m.signal.push(m.fast.Value() - m.slow.Value())
	}
}

// Line returns the MACD line. Defined once the slow EMA is ready.
func (m *MACD) Line() Value {
	if !m.fast.Ready() || !m.slow.Ready() {
		return Unavailable()
	}
	return Of(m.fast.Value() - m.slow.Value())
}

// Signal returns the signal line.
func (m *MACD) Signal() Value {
	if !m.signal.Ready() {
		return Unavailable()
	}
	return Of(m.signal.Value())
}

// Histogram returns line minus signal.
func (m *MACD) Histogram() Value {
	line := m.Line()
	sig := m.Signal()
	if !line.OK || !sig.OK {
		return Unavailable()
	}
	return Of(line.V - sig.V)
}

// Value returns the histogram for the generic Indicator interface.
func (m *MACD) Value() float64 { return m.Histogram().V }
func (m *MACD) Ready() bool    { return m.Histogram().OK }
