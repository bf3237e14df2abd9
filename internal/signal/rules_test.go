package signal

import (
	"testing"

	"github.com/cattychan/stock-scanner/internal/indicator"
)

// baseSet returns an indicator set where nothing fires: every value
// available, everything neutral.
func baseSet() *indicator.Set {
	return &indicator.Set{
		LastClose:    100,
		PrevClose:    100,
		Volume:       1000,
		SMAShort:     indicator.Of(110), // close below short SMA
		SMALong:      indicator.Of(100),
		PrevSMAShort: indicator.Of(110),
		PrevSMALong:  indicator.Of(100),
		RSI:          indicator.Of(75), // outside both RSI bands
		MACDHist:     indicator.Of(-1),
		PrevMACDHist: indicator.Of(-1),
		BBUpper:      indicator.Of(120),
		BBMiddle:     indicator.Of(95),
		BBLower:      indicator.Of(90), // position (100-90)/30 = 0.33
		BBWidth:      indicator.Of(31.5),
		VWAP:         indicator.Of(105),
		Volatility:   indicator.Of(40),
		AvgVolume20:  indicator.Of(1000),
		High20D:      indicator.Of(120),
		Low20D:       indicator.Of(95),
		High52W:      indicator.Of(150),
		Low52W:       indicator.Of(90), // 100 < 90*1.2
	}
}

func generate(s *indicator.Set) Set {
	return NewGenerator(nil).Generate(s)
}

func TestBaseSetFiresNothing(t *testing.T) {
	got := generate(baseSet())
	if len(got) != 0 {
		t.Fatalf("expected no signals, got %v", got)
	}
}

func TestGoldenCross_FiresOnlyOnCross(t *testing.T) {
	s := baseSet()
	s.SMAShort = indicator.Of(101)
	s.SMALong = indicator.Of(100)
	s.PrevSMAShort = indicator.Of(99)
	s.PrevSMALong = indicator.Of(100)
	if got := generate(s); !got.Contains(GoldenCross) {
		t.Errorf("expected Golden_Cross, got %v", got)
	}

	// Short already above long on the prior bar: no crossover.
	s.PrevSMAShort = indicator.Of(100.5)
	if got := generate(s); got.Contains(GoldenCross) {
		t.Errorf("Golden_Cross fired without a crossover: %v", got)
	}
}

func TestGoldenCross_SilentWhenPriorUnavailable(t *testing.T) {
	s := baseSet()
	s.SMAShort = indicator.Of(101)
	s.SMALong = indicator.Of(100)
	s.PrevSMAShort = indicator.Unavailable()
	if got := generate(s); got.Contains(GoldenCross) {
		t.Errorf("Golden_Cross fired with unavailable prior SMA: %v", got)
	}
}

func TestRSIBands(t *testing.T) {
	tests := []struct {
		rsi    indicator.Value
		bounce bool
		strong bool
	}{
		{indicator.Of(40), true, false},
		{indicator.Of(60), false, true},
		{indicator.Of(30), false, false}, // boundaries are exclusive
		{indicator.Of(50), false, false},
		{indicator.Of(70), false, false},
		{indicator.Unavailable(), false, false},
	}
	for _, tt := range tests {
		s := baseSet()
		s.RSI = tt.rsi
		got := generate(s)
		if got.Contains(RSIBounce) != tt.bounce {
			t.Errorf("RSI=%+v: RSI_Bounce=%v, want %v", tt.rsi, got.Contains(RSIBounce), tt.bounce)
		}
		if got.Contains(RSIStrong) != tt.strong {
			t.Errorf("RSI=%+v: RSI_Strong=%v, want %v", tt.rsi, got.Contains(RSIStrong), tt.strong)
		}
	}
}

func TestMACDRules(t *testing.T) {
	s := baseSet()
	s.MACDHist = indicator.Of(0.5)
	s.PrevMACDHist = indicator.Of(-0.1)
	got := generate(s)
	if !got.Contains(MACDTurnPositive) {
		t.Errorf("expected MACD_Turn_Positive, got %v", got)
	}
	if !got.Contains(MACDAccelerating) {
		t.Errorf("expected MACD_Accelerating, got %v", got)
	}

	// Positive but decelerating: neither turn nor acceleration.
	s.PrevMACDHist = indicator.Of(0.8)
	got = generate(s)
	if got.Contains(MACDTurnPositive) || got.Contains(MACDAccelerating) {
		t.Errorf("decelerating histogram should fire nothing, got %v", got)
	}
}

func TestVolumeSurge(t *testing.T) {
	s := baseSet()
	s.Volume = 1501
	if got := generate(s); !got.Contains(VolumeSurge) {
		t.Errorf("expected Volume_Surge at 1.5x, got %v", got)
	}
	s.Volume = 1500 // exactly 1.5x is not a surge
	if got := generate(s); got.Contains(VolumeSurge) {
		t.Errorf("Volume_Surge fired at exactly 1.5x: %v", got)
	}
	s.Volume = 5000
	s.AvgVolume20 = indicator.Unavailable()
	if got := generate(s); got.Contains(VolumeSurge) {
		t.Errorf("Volume_Surge fired with unavailable average: %v", got)
	}
}

func TestHighLowProximityRules(t *testing.T) {
	s := baseSet()
	s.High20D = indicator.Of(100.4) // 100 >= 100.4*0.995
	s.High52W = indicator.Of(105)   // 100 >= 105*0.95
	s.Low52W = indicator.Of(80)     // 100 >= 80*1.2
	got := generate(s)
	for _, want := range []Signal{Near20DHigh, Near52WHigh, ReboundFromLow} {
		if !got.Contains(want) {
			t.Errorf("expected %s, got %v", want, got)
		}
	}
}

func TestProximityRules_SilentOnDegenerateRange(t *testing.T) {
	// A flat series collapses high and low to the same price; calling the
	// close "near the high" of a rangeless window would be meaningless.
	s := baseSet()
	s.High20D = indicator.Of(100)
	s.Low20D = indicator.Of(100)
	s.High52W = indicator.Of(100)
	s.Low52W = indicator.Of(100)
	got := generate(s)
	if got.Contains(Near20DHigh) || got.Contains(Near52WHigh) {
		t.Errorf("proximity rules fired on a degenerate range: %v", got)
	}
}

func TestBollingerRules(t *testing.T) {
	s := baseSet()
	s.BBUpper = indicator.Of(99)
	if got := generate(s); !got.Contains(BBBreakout) {
		t.Errorf("expected BB_Breakout above upper band, got %v", got)
	}

	s = baseSet()
	s.PrevClose = 89
	s.BBLower = indicator.Of(90) // prev below band, close back at/above it
	if got := generate(s); !got.Contains(BBOversoldBounce) {
		t.Errorf("expected BB_Oversold_Bounce, got %v", got)
	}

	s = baseSet()
	s.BBUpper = indicator.Of(110)
	s.BBLower = indicator.Of(95) // position (100-95)/15 = 0.33 → silent
	if got := generate(s); got.Contains(BBStrongZone) {
		t.Errorf("BB_Strong_Zone fired at position 0.33: %v", got)
	}
	s.BBLower = indicator.Of(85) // position (100-85)/25 = 0.6
	if got := generate(s); !got.Contains(BBStrongZone) {
		t.Errorf("expected BB_Strong_Zone at position 0.6, got %v", got)
	}
}

func TestBBStrongZone_ZeroWidthBandIsSilent(t *testing.T) {
	s := baseSet()
	s.BBUpper = indicator.Of(100)
	s.BBLower = indicator.Of(100)
	if got := generate(s); got.Contains(BBStrongZone) {
		t.Errorf("BB_Strong_Zone fired on zero-width band: %v", got)
	}
}

func TestVWAPRules(t *testing.T) {
	s := baseSet()
	s.VWAP = indicator.Of(99)
	got := generate(s)
	if !got.Contains(AboveVWAP) {
		t.Errorf("expected Above_VWAP, got %v", got)
	}
	if got.Contains(VWAPBreakout) {
		t.Errorf("VWAP_Breakout fired with prior close above VWAP: %v", got)
	}

	s.PrevClose = 98.5 // prior close below VWAP: this is the breakout
	got = generate(s)
	if !got.Contains(VWAPBreakout) {
		t.Errorf("expected VWAP_Breakout, got %v", got)
	}
}

func TestQuietAccumulation(t *testing.T) {
	s := baseSet()
	s.Volatility = indicator.Of(15)
	s.Volume = 1301
	if got := generate(s); !got.Contains(QuietAccumulation) {
		t.Errorf("expected Quiet_Accumulation, got %v", got)
	}
	s.Volatility = indicator.Of(25)
	if got := generate(s); got.Contains(QuietAccumulation) {
		t.Errorf("Quiet_Accumulation fired with volatility 25: %v", got)
	}
}

func TestGenerator_EnabledSubset(t *testing.T) {
	s := baseSet()
	s.VWAP = indicator.Of(99)
	s.RSI = indicator.Of(60)

	gen := NewGenerator([]Signal{RSIStrong})
	got := gen.Generate(s)
	if len(got) != 1 || got[0] != RSIStrong {
		t.Fatalf("expected only RSI_Strong, got %v", got)
	}
}

func TestFromNames(t *testing.T) {
	got, err := FromNames([]string{"Golden_Cross", " Above_VWAP "})
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	if len(got) != 2 || got[0] != GoldenCross || got[1] != AboveVWAP {
		t.Errorf("got %v", got)
	}
	if _, err := FromNames([]string{"Golden_Crossing"}); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestSet_JoinRoundTrip(t *testing.T) {
	in := Set{GoldenCross, AboveVWAP, VolumeSurge}
	out := ParseSet(in.Join())
	if len(out) != len(in) {
		t.Fatalf("round trip length mismatch: %v vs %v", in, out)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("round trip mismatch at %d: %s vs %s", i, in[i], out[i])
		}
	}
}
