// Package risk maps indicator readings to a bounded composite risk score.
//
// The score is the sum of six independent weighted buckets, clamped to
// [0, 100]; lower means lower risk. Bucket boundaries are fixed constants
// the admission thresholds were tuned against — do not "correct" them to
// textbook values. The score never feeds back into signal generation; it
// is only an admission filter and a sort key.
package risk

import "github.com/cattychan/stock-scanner/internal/indicator"

// maxScore caps the composite score.
const maxScore = 100

// Score computes the composite risk score for one ticker from its
// indicator set. An unavailable input contributes its bucket's neutral
// weight, keeping the score comparable across tickers with uneven
// history.
func Score(s *indicator.Set) int {
	score := 0
	score += volatilityBucket(s.Volatility)
	score += rsiBucket(s.RSI)
	score += distanceFromHighBucket(s.High52W, s.LastClose)
	score += macdBucket(s.MACDHist)
	score += bandWidthBucket(s.BBWidth)
	score += priceLevelBucket(s.LastClose)

	if score > maxScore {
		score = maxScore
	}
	return score
}

// volatilityBucket: annualized volatility, 5-25 points.
func volatilityBucket(v indicator.Value) int {
	if !v.OK {
		return 5
	}
	switch {
	case v.V > 50:
		return 25
	case v.V > 40:
		return 20
	case v.V > 30:
		return 15
	case v.V > 20:
		return 10
	default:
		return 5
	}
}

// rsiBucket: both extremes are risky, 5-20 points.
func rsiBucket(v indicator.Value) int {
	if !v.OK {
		return 5
	}
	switch {
	case v.V > 80:
		return 20
	case v.V > 70:
		return 15
	case v.V < 20:
		return 20
	case v.V < 30:
		return 10
	default:
		return 5
	}
}

// distanceFromHighBucket: percent below the 52-week high, 5-15 points.
// Near the high means pullback risk; far below it is treated as a
// potential bottom rather than extra risk.
func distanceFromHighBucket(high52w indicator.Value, lastClose float64) int {
	if !high52w.OK || high52w.V <= 0 {
		return 8
	}
	distance := (high52w.V - lastClose) / high52w.V * 100
	switch {
	case distance > 50:
		return 5
	case distance > 30:
		return 10
	case distance < 5:
		return 15
	default:
		return 8
	}
}

// macdBucket: histogram magnitude and sign, 5-15 points.
func macdBucket(v indicator.Value) int {
	if !v.OK {
		return 8
	}
	switch {
	case v.V < -0.5:
		return 15
	case v.V < 0:
		return 10
	case v.V > 0.5:
		return 5
	default:
		return 8
	}
}

// bandWidthBucket: Bollinger band width percentage, 5-15 points.
func bandWidthBucket(v indicator.Value) int {
	if !v.OK {
		return 8
	}
	switch {
	case v.V > 15:
		return 15
	case v.V > 10:
		return 10
	case v.V < 5:
		return 5
	default:
		return 8
	}
}

// priceLevelBucket: absolute price level, 3-10 points. Penny-adjacent
// names are risky; very high-priced names slightly so.
func priceLevelBucket(lastClose float64) int {
	switch {
	case lastClose < 10:
		return 10
	case lastClose < 20:
		return 7
	case lastClose > 500:
		return 5
	default:
		return 3
	}
}
