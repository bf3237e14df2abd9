package notification

import (
	"fmt"
	"strings"

	"github.com/cattychan/stock-scanner/internal/scan"
)

// digestTop is how many ranked tickers the digest message lists.
const digestTop = 5

// BuildDigest summarizes a finished scan run as one alert. An empty run
// gets a WARNING so a silently broken data feed is noticed.
func BuildDigest(report *scan.Report) Alert {
	title := fmt.Sprintf("Scan %s: %d/%d admitted",
		report.Started.UTC().Format("2006-01-02 15:04"),
		report.Admitted, report.Attempted)

	if len(report.Results) == 0 {
		return Alert{
			Level:   AlertWarning,
			Title:   title,
			Message: "No tickers passed admission.",
		}
	}

	var b strings.Builder
	n := len(report.Results)
	if n > digestTop {
		n = digestTop
	}
	for i, r := range report.Results[:n] {
		fmt.Fprintf(&b, "%d. %s %.2f (%+.2f%%) risk %d — %s\n",
			i+1, r.Ticker, r.Price, r.ChangePct, r.RiskScore, r.Signals)
	}
	return Alert{
		Level:   AlertInfo,
		Title:   title,
		Message: strings.TrimRight(b.String(), "\n"),
	}
}
