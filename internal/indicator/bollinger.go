package indicator

import (
	"fmt"
	"math"

	"github.com/cattychan/stock-scanner/internal/model"
)

// Bollinger calculates Bollinger Bands: an SMA middle band with upper and
// lower bands k sample standard deviations away. Width is the band spread
// as a percentage of the middle band.
type Bollinger struct {
	period int
	k      float64
	buf    []float64 // circular buffer of the last period closes
	idx    int
	count  int
}

// NewBollinger creates a Bollinger Bands indicator (typically period 20,
// k 2).
func NewBollinger(period int, k float64) *Bollinger {
	return &Bollinger{
		period: period,
		k:      k,
		buf:    make([]float64, period),
	}
}

func (b *Bollinger) Name() string { return fmt.Sprintf("BB_%d", b.period) }

func (b *Bollinger) Update(bar model.Bar) {
	b.buf[b.idx] = bar.Close
	b.idx = (b.idx + 1) % b.period
	b.count++
}

func (b *Bollinger) Ready() bool { return b.count >= b.period }

// Value returns the middle band for the generic Indicator interface.
func (b *Bollinger) Value() float64 {
	mid, _ := b.stats()
	return mid
}

// stats computes mean and sample standard deviation of the window.
func (b *Bollinger) stats() (mean, stdev float64) {
	n := float64(b.period)
	sum := 0.0
	for _, v := range b.buf {
		sum += v
	}
	mean = sum / n

	sq := 0.0
	for _, v := range b.buf {
		d := v - mean
		sq += d * d
	}
	stdev = math.Sqrt(sq / (n - 1))
	return mean, stdev
}

// Bands returns (upper, middle, lower). All three are unavailable until
// the window is full; otherwise lower <= middle <= upper always holds.
func (b *Bollinger) Bands() (upper, middle, lower Value) {
	if !b.Ready() {
		return Unavailable(), Unavailable(), Unavailable()
	}
	mean, stdev := b.stats()
	return Of(mean + b.k*stdev), Of(mean), Of(mean - b.k*stdev)
}

// Width returns (upper-lower)/middle as a percentage. Unavailable when the
// middle band is zero.
func (b *Bollinger) Width() Value {
	upper, middle, lower := b.Bands()
	if !middle.OK || middle.V == 0 {
		return Unavailable()
	}
	return Of((upper.V - lower.V) / middle.V * 100)
}
