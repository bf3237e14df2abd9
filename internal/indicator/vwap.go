package indicator

import "github.com/cattychan/stock-scanner/internal/model"

// VWAP calculates the Volume Weighted Average Price cumulatively from the
// start of the fetched window: sum(typical*volume)/sum(volume) where
// typical = (high+low+close)/3. This is a since-window-start VWAP, not a
// session VWAP, so the meaning depends on the caller supplying a window
// with a sensible start date.
type VWAP struct {
	sumPV float64
	sumV  float64
}

// NewVWAP creates a cumulative VWAP indicator.
func NewVWAP() *VWAP { return &VWAP{} }

func (v *VWAP) Name() string { return "VWAP" }

func (v *VWAP) Update(bar model.Bar) {
	typical := (bar.High + bar.Low + bar.Close) / 3
	v.sumPV += typical * float64(bar.Volume)
	v.sumV += float64(bar.Volume)
}

func (v *VWAP) Value() float64 {
	if v.sumV == 0 {
		return 0
	}
	return v.sumPV / v.sumV
}

// Ready reports false until some volume has traded; an all-zero-volume
// window has no defined VWAP.
func (v *VWAP) Ready() bool { return v.sumV > 0 }
