package indicator

import (
	"fmt"

	"github.com/cattychan/stock-scanner/internal/model"
)

// Set holds every indicator reading as of the last bar of a series, plus
// the prior-bar readings the crossover rules need. Fields of type Value
// carry their own availability; consumers check OK before comparing.
type Set struct {
	LastClose float64
	PrevClose float64
	ChangePct float64
	Volume    int64

	SMAShort     Value
	SMALong      Value
	PrevSMAShort Value
	PrevSMALong  Value

	RSI Value

	MACDHist     Value
	PrevMACDHist Value

	BBUpper  Value
	BBMiddle Value
	BBLower  Value
	BBWidth  Value

	VWAP       Value
	Volatility Value

	AvgVolume20 Value
	High20D     Value
	Low20D      Value
	High52W     Value
	Low52W      Value
}

// BatteryConfig fixes the indicator periods for a scan run.
type BatteryConfig struct {
	SMAShortPeriod int // default 20
	SMALongPeriod  int // default 50
	RSIPeriod      int // default 14
	MACDFast       int // default 12
	MACDSlow       int // default 26
	MACDSignal     int // default 9
	BBPeriod       int // default 20
	BBStdDev       float64
	HighLowPeriod  int // default 20
	AvgVolPeriod   int // default 20
}

// DefaultBatteryConfig returns the standard scan periods.
func DefaultBatteryConfig() BatteryConfig {
	return BatteryConfig{
		SMAShortPeriod: 20,
		SMALongPeriod:  50,
		RSIPeriod:      14,
		MACDFast:       12,
		MACDSlow:       26,
		MACDSignal:     9,
		BBPeriod:       20,
		BBStdDev:       2,
		HighLowPeriod:  20,
		AvgVolPeriod:   20,
	}
}

// Battery computes the full indicator set for one BarSeries in a single
// chronological pass. A Battery is cheap to construct and is used once
// per ticker per scan; it holds no state between Compute calls.
type Battery struct {
	cfg BatteryConfig
}

// NewBattery creates a battery with the given periods.
func NewBattery(cfg BatteryConfig) *Battery {
	return &Battery{cfg: cfg}
}

// Compute runs every indicator over the series and snapshots the readings
// after the second-to-last and the last bar. yearSeries supplies the
// 52-week high/low; when it is nil or empty both fall back to the last
// close so the dependent rules degrade instead of firing spuriously.
//
// The series must hold at least two bars; shorter histories are a
// data-unavailable condition for the whole ticker, not a per-indicator
// one.
func (b *Battery) Compute(series, yearSeries *model.BarSeries) (*Set, error) {
	n := series.Len()
	if n < 2 {
		return nil, fmt.Errorf("%s: need at least 2 bars, got %d", series.Ticker, n)
	}

	smaShort := NewSMA(b.cfg.SMAShortPeriod)
	smaLong := NewSMA(b.cfg.SMALongPeriod)
	rsi := NewRSI(b.cfg.RSIPeriod)
	macd := NewMACD(b.cfg.MACDFast, b.cfg.MACDSlow, b.cfg.MACDSignal)
	bb := NewBollinger(b.cfg.BBPeriod, b.cfg.BBStdDev)
	vwap := NewVWAP()
	vol := NewVolatility()
	high20 := NewRollingHigh(b.cfg.HighLowPeriod)
	low20 := NewRollingLow(b.cfg.HighLowPeriod)
	avgVol := NewAvgVolume(b.cfg.AvgVolPeriod)

	all := []Indicator{smaShort, smaLong, rsi, macd, bb, vwap, vol, high20, low20, avgVol}

	set := &Set{}
	for i, bar := range series.Bars {
		for _, ind := range all {
			ind.Update(bar)
		}
		if i == n-2 {
			// Prior-bar snapshot for crossover detection
			set.PrevSMAShort = capture(smaShort)
			set.PrevSMALong = capture(smaLong)
			set.PrevMACDHist = macd.Histogram()
		}
	}

	last, prev := series.Last(), series.Prev()
	set.LastClose = last.Close
	set.PrevClose = prev.Close
	set.Volume = last.Volume
	if prev.Close != 0 {
		set.ChangePct = (last.Close - prev.Close) / prev.Close * 100
	}

	set.SMAShort = capture(smaShort)
	set.SMALong = capture(smaLong)
	set.RSI = capture(rsi)
	set.MACDHist = macd.Histogram()
	set.BBUpper, set.BBMiddle, set.BBLower = bb.Bands()
	set.BBWidth = bb.Width()
	set.VWAP = capture(vwap)
	set.Volatility = capture(vol)
	set.High20D = capture(high20)
	set.Low20D = capture(low20)
	set.AvgVolume20 = capture(avgVol)

	set.High52W, set.Low52W = yearlyRange(yearSeries, last.Close)

	return set, nil
}

// yearlyRange extracts the 52-week high and low from the 1-year series.
// With no yearly data both collapse to the last close.
func yearlyRange(year *model.BarSeries, lastClose float64) (high, low Value) {
	if year == nil || year.Len() == 0 {
		return Of(lastClose), Of(lastClose)
	}
	hi := year.Bars[0].High
	lo := year.Bars[0].Low
	for _, bar := range year.Bars[1:] {
		if bar.High > hi {
			hi = bar.High
		}
		if bar.Low < lo {
			lo = bar.Low
		}
	}
	return Of(hi), Of(lo)
}
