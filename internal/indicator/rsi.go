package indicator

import (
	"fmt"

	"github.com/cattychan/stock-scanner/internal/model"
)

// RSI calculates the Relative Strength Index using plain trailing-window
// means of gains and losses (not Wilder smoothing). The signal thresholds
// downstream were tuned against this exact variant, so it is a fixed
// policy here.
//
// Degenerate cases: when the average loss over the window is zero, RSI is
// 100 if there was any gain and 50 for a flat streak.
type RSI struct {
	period    int
	gains     []float64 // circular buffers of the last period deltas
	losses    []float64
	idx       int
	deltas    int
	gainSum   float64
	lossSum   float64
	prevClose float64
	seen      int
}

// NewRSI creates an RSI indicator with the given period (typically 14).
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		gains:  make([]float64, period),
		losses: make([]float64, period),
	}
}

func (r *RSI) Name() string { return fmt.Sprintf("RSI_%d", r.period) }

func (r *RSI) Update(bar model.Bar) {
	price := bar.Close
	r.seen++

	if r.seen == 1 {
		// First bar — no delta yet
		r.prevClose = price
		return
	}

	delta := price - r.prevClose
	r.prevClose = price

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	if r.deltas >= r.period {
		r.gainSum -= r.gains[r.idx]
		r.lossSum -= r.losses[r.idx]
	}
	r.gains[r.idx] = gain
	r.losses[r.idx] = loss
	r.gainSum += gain
	r.lossSum += loss
	r.idx = (r.idx + 1) % r.period
	r.deltas++
}

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}
	avgGain := r.gainSum / float64(r.period)
	avgLoss := r.lossSum / float64(r.period)

	if avgLoss == 0 {
		if avgGain > 0 {
			return 100
		}
		return 50 // no movement over the window
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Ready reports true once period deltas (period+1 closes) have been seen.
func (r *RSI) Ready() bool { return r.deltas >= r.period }
