package indicator

import (
	"fmt"

	"github.com/cattychan/stock-scanner/internal/model"
)

// RollingHigh tracks the maximum high over the trailing n bars.
type RollingHigh struct {
	period int
	buf    []float64
	idx    int
	count  int
}

// NewRollingHigh creates a rolling-high indicator over the given window.
func NewRollingHigh(period int) *RollingHigh {
	return &RollingHigh{period: period, buf: make([]float64, period)}
}

func (r *RollingHigh) Name() string { return fmt.Sprintf("HIGH_%d", r.period) }

func (r *RollingHigh) Update(bar model.Bar) {
	r.buf[r.idx] = bar.High
	r.idx = (r.idx + 1) % r.period
	r.count++
}

func (r *RollingHigh) Value() float64 {
	if !r.Ready() {
		return 0
	}
	max := r.buf[0]
	for _, v := range r.buf[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func (r *RollingHigh) Ready() bool { return r.count >= r.period }

// RollingLow tracks the minimum low over the trailing n bars.
type RollingLow struct {
	period int
	buf    []float64
	idx    int
	count  int
}

// NewRollingLow creates a rolling-low indicator over the given window.
func NewRollingLow(period int) *RollingLow {
	return &RollingLow{period: period, buf: make([]float64, period)}
}

func (r *RollingLow) Name() string { return fmt.Sprintf("LOW_%d", r.period) }

func (r *RollingLow) Update(bar model.Bar) {
	r.buf[r.idx] = bar.Low
	r.idx = (r.idx + 1) % r.period
	r.count++
}

func (r *RollingLow) Value() float64 {
	if !r.Ready() {
		return 0
	}
	min := r.buf[0]
	for _, v := range r.buf[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func (r *RollingLow) Ready() bool { return r.count >= r.period }

// AvgVolume is the rolling mean of daily volume over the trailing n bars.
type AvgVolume struct {
	period int
	buf    []float64
	idx    int
	count  int
	sum    float64
}

// NewAvgVolume creates a rolling average-volume indicator.
func NewAvgVolume(period int) *AvgVolume {
	return &AvgVolume{period: period, buf: make([]float64, period)}
}

func (a *AvgVolume) Name() string { return fmt.Sprintf("AVGVOL_%d", a.period) }

func (a *AvgVolume) Update(bar model.Bar) {
	v := float64(bar.Volume)
	if a.count >= a.period {
		a.sum -= a.buf[a.idx]
	}
	a.buf[a.idx] = v
	a.sum += v
	a.idx = (a.idx + 1) % a.period
	a.count++
}

func (a *AvgVolume) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.sum / float64(a.period)
}

func (a *AvgVolume) Ready() bool { return a.count >= a.period }
