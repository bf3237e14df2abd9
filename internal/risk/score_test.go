package risk

import (
	"testing"

	"github.com/cattychan/stock-scanner/internal/indicator"
)

// calmSet is a low-risk profile: every bucket lands on its minimum.
func calmSet() *indicator.Set {
	return &indicator.Set{
		LastClose:  100,
		Volatility: indicator.Of(15), // 5
		RSI:        indicator.Of(55), // 5
		High52W:    indicator.Of(250),
		MACDHist:   indicator.Of(1),  // 5
		BBWidth:    indicator.Of(3),  // 5
	}
}

func TestScore_LowRiskProfile(t *testing.T) {
	// volatility 5 + RSI 5 + distance (60% below high) 5 + MACD 5 +
	// width 5 + price 3 = 28
	if got := Score(calmSet()); got != 28 {
		t.Errorf("expected score 28, got %d", got)
	}
}

func TestScore_WorstProfileIs100(t *testing.T) {
	s := &indicator.Set{
		LastClose:  7,
		Volatility: indicator.Of(80),   // 25
		RSI:        indicator.Of(85),   // 20
		High52W:    indicator.Of(7.2),  // <5% from high: 15
		MACDHist:   indicator.Of(-2),   // 15
		BBWidth:    indicator.Of(25),   // 15
		// price < 10: 10 → raw total 100
	}
	if got := Score(s); got != 100 {
		t.Errorf("expected maximum score 100, got %d", got)
	}
}

func TestScore_Buckets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *indicator.Set)
		delta  int // change vs the calm profile's 28
	}{
		{"volatility 35", func(s *indicator.Set) { s.Volatility = indicator.Of(35) }, 10},
		{"volatility 45", func(s *indicator.Set) { s.Volatility = indicator.Of(45) }, 15},
		{"volatility 55", func(s *indicator.Set) { s.Volatility = indicator.Of(55) }, 20},
		{"RSI overbought 75", func(s *indicator.Set) { s.RSI = indicator.Of(75) }, 10},
		{"RSI oversold 25", func(s *indicator.Set) { s.RSI = indicator.Of(25) }, 5},
		{"RSI extreme 15", func(s *indicator.Set) { s.RSI = indicator.Of(15) }, 15},
		{"near the high", func(s *indicator.Set) { s.High52W = indicator.Of(102) }, 10},
		{"mid distance", func(s *indicator.Set) { s.High52W = indicator.Of(120) }, 3},
		{"MACD mildly negative", func(s *indicator.Set) { s.MACDHist = indicator.Of(-0.2) }, 5},
		{"MACD strongly negative", func(s *indicator.Set) { s.MACDHist = indicator.Of(-1) }, 10},
		{"wide bands", func(s *indicator.Set) { s.BBWidth = indicator.Of(18) }, 10},
		{"cheap stock", func(s *indicator.Set) { s.LastClose = 8 }, 7},
		{"expensive stock", func(s *indicator.Set) {
			s.LastClose = 600
			s.High52W = indicator.Of(1500) // keep the distance bucket at its minimum
		}, 2},
	}
	base := Score(calmSet())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := calmSet()
			tt.mutate(s)
			if got := Score(s); got != base+tt.delta {
				t.Errorf("expected %d, got %d", base+tt.delta, got)
			}
		})
	}
}

func TestScore_UnavailableInputsUseNeutralWeights(t *testing.T) {
	s := &indicator.Set{LastClose: 100}
	// 5 + 5 + 8 + 8 + 8 + 3 = 37
	if got := Score(s); got != 37 {
		t.Errorf("expected neutral score 37, got %d", got)
	}
}
