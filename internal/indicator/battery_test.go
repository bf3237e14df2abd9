package indicator

import (
	"math"
	"testing"

	"github.com/cattychan/stock-scanner/internal/model"
)

func TestBattery_RejectsTooShortSeries(t *testing.T) {
	b := NewBattery(DefaultBatteryConfig())
	if _, err := b.Compute(seriesFromCloses("X", []float64{100}), nil); err == nil {
		t.Fatal("expected error for 1-bar series")
	}
}

func TestBattery_FlatSixtyBars(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	set, err := NewBattery(DefaultBatteryConfig()).Compute(seriesFromCloses("FLAT", closes), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if !set.Volatility.OK || math.Abs(set.Volatility.V) > 1e-9 {
		t.Errorf("expected volatility=0, got %+v", set.Volatility)
	}
	if !set.RSI.OK || math.Abs(set.RSI.V-50) > 1e-9 {
		t.Errorf("expected RSI=50 on no movement, got %+v", set.RSI)
	}
	if !set.BBWidth.OK || math.Abs(set.BBWidth.V) > 1e-9 {
		t.Errorf("expected band width=0, got %+v", set.BBWidth)
	}
	if !set.SMAShort.OK || !set.SMALong.OK {
		t.Fatal("SMAs unavailable with 60 bars")
	}
	if set.SMAShort.V != set.SMALong.V {
		t.Errorf("flat series: SMAs differ: %.4f vs %.4f", set.SMAShort.V, set.SMALong.V)
	}
	if !set.VWAP.OK || math.Abs(set.VWAP.V-100) > 1e-9 {
		t.Errorf("expected VWAP=100, got %+v", set.VWAP)
	}
	if set.ChangePct != 0 {
		t.Errorf("expected change=0, got %.4f", set.ChangePct)
	}
	if !set.High20D.OK || !set.Low20D.OK || set.High20D.V != set.Low20D.V {
		t.Errorf("flat series: 20-day range should collapse, got %+v / %+v", set.High20D, set.Low20D)
	}
	// No yearly data: 52-week range collapses to last close
	if set.High52W.V != 100 || set.Low52W.V != 100 {
		t.Errorf("expected 52w range fallback to 100, got %+v / %+v", set.High52W, set.Low52W)
	}
}

func TestBattery_RisingSixtyBars(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := seriesFromCloses("UP", closes)
	set, err := NewBattery(DefaultBatteryConfig()).Compute(series, series)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if !set.RSI.OK || set.RSI.V != 100 {
		t.Errorf("monotone rise: expected RSI=100, got %+v", set.RSI)
	}
	if !set.SMAShort.OK || !set.SMALong.OK || set.SMAShort.V <= set.SMALong.V {
		t.Errorf("rising series: expected short SMA above long, got %+v vs %+v",
			set.SMAShort, set.SMALong)
	}
	if !set.VWAP.OK || set.LastClose <= set.VWAP.V {
		t.Errorf("rising series: close %.2f should be above VWAP %+v", set.LastClose, set.VWAP)
	}
	if !set.High20D.OK || set.LastClose < set.High20D.V {
		t.Errorf("last close %.2f should be the 20-day high %+v", set.LastClose, set.High20D)
	}
	if set.LastClose < set.High52W.V {
		t.Errorf("last close %.2f should be the 52-week high %.2f", set.LastClose, set.High52W.V)
	}
	if !set.MACDHist.OK || set.MACDHist.V <= 0 {
		t.Errorf("steady rise: expected positive MACD histogram, got %+v", set.MACDHist)
	}
}

func TestBattery_PrevSnapshotOneBarBehind(t *testing.T) {
	// 51 bars so the 50-bar SMA becomes ready exactly on the prior bar.
	closes := make([]float64, 51)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	set, err := NewBattery(DefaultBatteryConfig()).Compute(seriesFromCloses("S", closes), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !set.PrevSMALong.OK {
		t.Fatal("prior long SMA should be ready at bar 50")
	}
	if !set.SMALong.OK {
		t.Fatal("long SMA should be ready at bar 51")
	}
	if set.PrevSMALong.V >= set.SMALong.V {
		t.Errorf("rising series: prior SMA %.4f should be below current %.4f",
			set.PrevSMALong.V, set.SMALong.V)
	}
}

func TestBattery_ShortHistoryLeavesValuesUnavailable(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	set, err := NewBattery(DefaultBatteryConfig()).Compute(seriesFromCloses("SHORT", closes), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if set.SMALong.OK {
		t.Error("50-bar SMA should be unavailable with 30 bars")
	}
	if set.MACDHist.OK {
		t.Error("MACD histogram should be unavailable with 30 bars")
	}
	if !set.SMAShort.OK {
		t.Error("20-bar SMA should be available with 30 bars")
	}
	if !set.RSI.OK {
		t.Error("RSI should be available with 30 bars")
	}
}

func TestBattery_YearlyRange(t *testing.T) {
	closes := []float64{100, 101, 102}
	year := &model.BarSeries{
		Ticker: "Y",
		Bars: []model.Bar{
			flatBar(0, 90, 1000),
			{Date: flatBar(1, 0, 0).Date, Open: 150, High: 160, Low: 140, Close: 150, Volume: 1000},
			flatBar(2, 95, 1000),
		},
	}
	set, err := NewBattery(DefaultBatteryConfig()).Compute(seriesFromCloses("Y", closes), year)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if set.High52W.V != 160 {
		t.Errorf("expected 52w high=160, got %.2f", set.High52W.V)
	}
	if set.Low52W.V != 90 {
		t.Errorf("expected 52w low=90, got %.2f", set.Low52W.V)
	}
}
