package signal

import "github.com/cattychan/stock-scanner/internal/indicator"

// Rule thresholds. These are tuned constants, not tunables: the admission
// counts downstream assume exactly these boundaries.
const (
	volumeSurgeRatio = 1.5
	near20DHighRatio = 0.995
	near52WHighRatio = 0.95
	reboundLowRatio  = 1.2

	quietVolatilityMax = 20
	quietVolumeRatio   = 1.3
)

// Rule pairs a signal name with its firing condition.
type Rule struct {
	Signal Signal
	Fires  func(s *indicator.Set) bool
}

// Rules returns the full rule table in evaluation order. Every condition
// checks availability of each input it reads before comparing.
func Rules() []Rule {
	return []Rule{
		{GoldenCross, func(s *indicator.Set) bool {
			if !s.SMAShort.OK || !s.SMALong.OK || !s.PrevSMAShort.OK || !s.PrevSMALong.OK {
				return false
			}
			return s.SMAShort.V > s.SMALong.V && s.PrevSMAShort.V <= s.PrevSMALong.V
		}},
		{BullishAlignment, func(s *indicator.Set) bool {
			if !s.SMAShort.OK || !s.SMALong.OK {
				return false
			}
			return s.LastClose > s.SMAShort.V && s.SMAShort.V > s.SMALong.V
		}},
		{RSIBounce, func(s *indicator.Set) bool {
			return s.RSI.OK && s.RSI.V > 30 && s.RSI.V < 50
		}},
		{RSIStrong, func(s *indicator.Set) bool {
			return s.RSI.OK && s.RSI.V > 50 && s.RSI.V < 70
		}},
		{MACDTurnPositive, func(s *indicator.Set) bool {
			if !s.MACDHist.OK || !s.PrevMACDHist.OK {
				return false
			}
			return s.MACDHist.V > 0 && s.PrevMACDHist.V <= 0
		}},
		{MACDAccelerating, func(s *indicator.Set) bool {
			if !s.MACDHist.OK || !s.PrevMACDHist.OK {
				return false
			}
			return s.MACDHist.V > 0 && s.MACDHist.V > s.PrevMACDHist.V
		}},
		{VolumeSurge, func(s *indicator.Set) bool {
			return s.AvgVolume20.OK && float64(s.Volume) > s.AvgVolume20.V*volumeSurgeRatio
		}},
		{Near20DHigh, func(s *indicator.Set) bool {
			if !s.High20D.OK || !s.Low20D.OK || s.High20D.V <= s.Low20D.V {
				// Degenerate range: every close is "near the high"
				return false
			}
			return s.LastClose >= s.High20D.V*near20DHighRatio
		}},
		{Near52WHigh, func(s *indicator.Set) bool {
			if !s.High52W.OK || !s.Low52W.OK || s.High52W.V <= s.Low52W.V {
				return false
			}
			return s.LastClose >= s.High52W.V*near52WHighRatio
		}},
		{ReboundFromLow, func(s *indicator.Set) bool {
			return s.Low52W.OK && s.LastClose >= s.Low52W.V*reboundLowRatio
		}},
		{BBBreakout, func(s *indicator.Set) bool {
			return s.BBUpper.OK && s.LastClose > s.BBUpper.V
		}},
		{BBOversoldBounce, func(s *indicator.Set) bool {
			if !s.BBLower.OK {
				return false
			}
			return s.PrevClose < s.BBLower.V && s.LastClose >= s.BBLower.V
		}},
		{BBStrongZone, func(s *indicator.Set) bool {
			if !s.BBUpper.OK || !s.BBLower.OK {
				return false
			}
			width := s.BBUpper.V - s.BBLower.V
			if width <= 0 {
				// Zero-width band: position is undefined, rule stays silent
				return false
			}
			pos := (s.LastClose - s.BBLower.V) / width
			return pos > 0.5 && pos < 1.0
		}},
		{AboveVWAP, func(s *indicator.Set) bool {
			return s.VWAP.OK && s.LastClose > s.VWAP.V
		}},
		{VWAPBreakout, func(s *indicator.Set) bool {
			return s.VWAP.OK && s.PrevClose < s.VWAP.V && s.LastClose > s.VWAP.V
		}},
		{QuietAccumulation, func(s *indicator.Set) bool {
			if !s.Volatility.OK || !s.AvgVolume20.OK {
				return false
			}
			return s.Volatility.V < quietVolatilityMax &&
				float64(s.Volume) > s.AvgVolume20.V*quietVolumeRatio
		}},
	}
}

// Generator evaluates a fixed subset of the rule table.
type Generator struct {
	rules []Rule
}

// NewGenerator creates a generator for the given enabled signals. A nil or
// empty enabled list means the full table.
func NewGenerator(enabled []Signal) *Generator {
	all := Rules()
	if len(enabled) == 0 {
		return &Generator{rules: all}
	}
	on := make(map[Signal]bool, len(enabled))
	for _, s := range enabled {
		on[s] = true
	}
	rules := make([]Rule, 0, len(all))
	for _, r := range all {
		if on[r.Signal] {
			rules = append(rules, r)
		}
	}
	return &Generator{rules: rules}
}

// Generate evaluates every enabled rule against the indicator set and
// returns the signals that fired, in table order.
func (g *Generator) Generate(s *indicator.Set) Set {
	var out Set
	for _, r := range g.rules {
		if r.Fires(s) {
			out = append(out, r.Signal)
		}
	}
	return out
}
