// Package model defines the core data types of the scanner: daily OHLCV
// bars, per-ticker bar series, and the scan result record.
package model

import (
	"fmt"
	"time"
)

// Bar represents one trading day of OHLCV data for a single instrument.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Validate checks the per-bar price invariants: low <= open,close <= high
// and low >= 0, volume >= 0.
func (b Bar) Validate() error {
	if b.Low < 0 {
		return fmt.Errorf("bar %s: negative low %.4f", b.Date.Format("2006-01-02"), b.Low)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume %d", b.Date.Format("2006-01-02"), b.Volume)
	}
	if b.Open < b.Low || b.Open > b.High {
		return fmt.Errorf("bar %s: open %.4f outside [%.4f, %.4f]", b.Date.Format("2006-01-02"), b.Open, b.Low, b.High)
	}
	if b.Close < b.Low || b.Close > b.High {
		return fmt.Errorf("bar %s: close %.4f outside [%.4f, %.4f]", b.Date.Format("2006-01-02"), b.Close, b.Low, b.High)
	}
	return nil
}

// BarSeries is a chronologically ordered sequence of daily bars for one
// ticker. It is built once by the provider and treated as immutable by
// everything downstream.
type BarSeries struct {
	Ticker string `json:"ticker"`
	Bars   []Bar  `json:"bars"`
}

// Len returns the number of bars in the series.
func (s *BarSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar. Panics on an empty series; callers
// gate on Len() first.
func (s *BarSeries) Last() Bar { return s.Bars[len(s.Bars)-1] }

// Prev returns the second-to-last bar.
func (s *BarSeries) Prev() Bar { return s.Bars[len(s.Bars)-2] }

// Validate checks every bar and the strict chronological ordering of the
// series.
func (s *BarSeries) Validate() error {
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.Ticker, err)
		}
		if i > 0 && !s.Bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("%s: bars out of order at index %d (%s >= %s)",
				s.Ticker, i,
				s.Bars[i-1].Date.Format("2006-01-02"),
				b.Date.Format("2006-01-02"))
		}
	}
	return nil
}
