package indicator

import (
	"fmt"

	"github.com/cattychan/stock-scanner/internal/model"
)

// SMA calculates the Simple Moving Average of closes over a rolling window.
// Uses a preallocated circular buffer for a zero-allocation hot path.
type SMA struct {
	period int
	buf    []float64 // circular buffer of the last period closes
	idx    int
	count  int
	sum    float64
}

// NewSMA creates an SMA indicator with the given period.
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		buf:    make([]float64, period),
	}
}

func (s *SMA) Name() string { return fmt.Sprintf("SMA_%d", s.period) }

func (s *SMA) Update(bar model.Bar) {
	price := bar.Close

	if s.count >= s.period {
		// Subtract the oldest value being overwritten
		s.sum -= s.buf[s.idx]
	}

	s.buf[s.idx] = price
	s.sum += price
	s.idx = (s.idx + 1) % s.period
	s.count++
}

func (s *SMA) Value() float64 {
	if s.count < s.period {
		return 0
	}
	return s.sum / float64(s.period)
}

func (s *SMA) Ready() bool { return s.count >= s.period }
