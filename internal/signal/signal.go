// Package signal derives named boolean trading signals from a computed
// indicator set.
//
// Each rule in the table is independent and evaluated unconditionally: a
// rule whose inputs are unavailable simply does not fire. A rule fires at
// most once per ticker per scan, so a Set never contains duplicates.
package signal

import (
	"fmt"
	"strings"
)

// Signal is the name of one boolean technical condition.
type Signal string

const (
	GoldenCross       Signal = "Golden_Cross"
	BullishAlignment  Signal = "Bullish_Alignment"
	RSIBounce         Signal = "RSI_Bounce"
	RSIStrong         Signal = "RSI_Strong"
	MACDTurnPositive  Signal = "MACD_Turn_Positive"
	MACDAccelerating  Signal = "MACD_Accelerating"
	VolumeSurge       Signal = "Volume_Surge"
	Near20DHigh       Signal = "Near_20D_High"
	Near52WHigh       Signal = "Near_52W_High"
	ReboundFromLow    Signal = "Rebound_From_Low"
	BBBreakout        Signal = "BB_Breakout"
	BBOversoldBounce  Signal = "BB_Oversold_Bounce"
	BBStrongZone      Signal = "BB_Strong_Zone"
	AboveVWAP         Signal = "Above_VWAP"
	VWAPBreakout      Signal = "VWAP_Breakout"
	QuietAccumulation Signal = "Quiet_Accumulation"
)

// All lists every known signal in table order.
func All() []Signal {
	return []Signal{
		GoldenCross, BullishAlignment,
		RSIBounce, RSIStrong,
		MACDTurnPositive, MACDAccelerating,
		VolumeSurge,
		Near20DHigh, Near52WHigh, ReboundFromLow,
		BBBreakout, BBOversoldBounce, BBStrongZone,
		AboveVWAP, VWAPBreakout,
		QuietAccumulation,
	}
}

// FromNames maps configured rule names onto known signals. Unknown
// names are an error so a typo cannot silently disable a rule.
func FromNames(names []string) ([]Signal, error) {
	known := make(map[Signal]bool)
	for _, s := range All() {
		known[s] = true
	}
	out := make([]Signal, 0, len(names))
	for _, n := range names {
		sig := Signal(strings.TrimSpace(n))
		if !known[sig] {
			return nil, fmt.Errorf("unknown signal %q", n)
		}
		out = append(out, sig)
	}
	return out, nil
}

// Set is the collection of signals that fired for one ticker, in table
// order. Membership is what matters; the order only keeps output stable.
type Set []Signal

// Count returns the number of fired signals.
func (s Set) Count() int { return len(s) }

// Contains reports whether the given signal fired.
func (s Set) Contains(sig Signal) bool {
	for _, v := range s {
		if v == sig {
			return true
		}
	}
	return false
}

// Join renders the set as a comma-separated list for snapshots.
func (s Set) Join() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// ParseSet parses a Join-ed list back into a Set. Unknown names are kept
// as-is so snapshots from older rule tables still round-trip.
func ParseSet(joined string) Set {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make(Set, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, Signal(p))
		}
	}
	return out
}
