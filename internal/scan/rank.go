package scan

import (
	"sort"

	"github.com/cattychan/stock-scanner/internal/model"
)

// rank orders admitted results deterministically. With risk scoring
// enabled the primary key is risk ascending (safest first), then signal
// count descending; without it, signal count descending. Ties always
// break on ticker so repeated runs over the same data produce identical
// output.
func rank(results []model.ScanResult, riskEnabled bool) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if riskEnabled && a.RiskScore != b.RiskScore {
			return a.RiskScore < b.RiskScore
		}
		if a.SignalCount != b.SignalCount {
			return a.SignalCount > b.SignalCount
		}
		return a.Ticker < b.Ticker
	})
}
