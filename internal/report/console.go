package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cattychan/stock-scanner/internal/scan"
)

// topN is how many ranked results the console table shows.
const topN = 10

// Printer renders the run summary and the top-ranked table to a writer.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a console printer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Print writes the summary. It is always called, even for an empty
// report, so a run with zero admissions still leaves a visible trace.
func (p *Printer) Print(report *scan.Report) {
	fmt.Fprintf(p.out, "\nScan %s — %d scanned, %d admitted (%.1f%%) in %s\n",
		report.Started.UTC().Format("2006-01-02 15:04:05"),
		report.Attempted, report.Admitted, report.AdmissionRate(),
		report.Duration.Round(10*time.Millisecond))

	if len(report.Results) == 0 {
		fmt.Fprintln(p.out, "No tickers passed admission.")
		return
	}

	n := len(report.Results)
	if n > topN {
		n = topN
	}
	fmt.Fprintf(p.out, "Top %d:\n", n)

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTICKER\tPRICE\tCHG%\tRISK\tVOL%\tRSI\tSIGNALS")
	for i, r := range report.Results[:n] {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%+.2f\t%d\t%.1f\t%.1f\t%d: %s\n",
			i+1, r.Ticker, r.Price, r.ChangePct, r.RiskScore,
			r.Volatility, r.RSI, r.SignalCount, r.Signals)
	}
	tw.Flush()
}
