package model

import (
	"time"
)

// ScanResult is the per-ticker record produced for every instrument that
// passes admission. It is created once at the end of the ticker pipeline
// and never mutated; ranking and the output sinks only read it.
//
// Prices are rounded to 2 decimals, the MACD histogram to 4, RSI /
// volatility / band width to 1, and the volume ratio to 2 — matching the
// snapshot format exactly so a written CSV round-trips.
type ScanResult struct {
	Ticker      string    `json:"ticker"`
	Price       float64   `json:"price"`
	ChangePct   float64   `json:"change_pct"`
	RiskScore   int       `json:"risk_score"`
	Volatility  float64   `json:"volatility_pct"`
	SMA20       float64   `json:"sma_20"`
	SMA50       float64   `json:"sma_50"`
	RSI         float64   `json:"rsi"`
	MACDHist    float64   `json:"macd_hist"`
	BBWidth     float64   `json:"bb_width"`
	VWAP        float64   `json:"vwap"`
	Volume      int64     `json:"volume"`
	AvgVolume20 int64     `json:"avg_volume_20"`
	VolumeRatio float64   `json:"volume_ratio"`
	High52W     float64   `json:"high_52w"`
	Low52W      float64   `json:"low_52w"`
	SignalCount int       `json:"signal_count"`
	Signals     string    `json:"signals"` // comma-joined signal names
	ScanTime    time.Time `json:"scan_time"`
}
