// Package report contains the output sinks for a scan run: the CSV
// snapshot, the console summary, and the Google Sheets upload.
package report

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cattychan/stock-scanner/internal/model"
	"github.com/cattychan/stock-scanner/internal/scan"
)

// csvHeader is the snapshot column set, in row order. It matches the
// ScanResult JSON field names so a snapshot round-trips.
var csvHeader = []string{
	"ticker", "price", "change_pct", "risk_score", "volatility_pct",
	"sma_20", "sma_50", "rsi", "macd_hist", "bb_width", "vwap",
	"volume", "avg_volume_20", "volume_ratio", "high_52w", "low_52w",
	"signal_count", "signals", "scan_time",
}

// CSVWriter writes one timestamped snapshot file per scan run under a
// fixed output directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a writer rooted at dir. The directory is created
// on the first write.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// Write dumps the report to results_YYYYMMDD_HHMMSS.csv (named after the
// scan start time, UTC) and returns the file path. An empty report still
// produces a file with just the header row.
func (w *CSVWriter) Write(report *scan.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("csv: create output dir: %w", err)
	}

	name := fmt.Sprintf("results_%s.csv", report.Started.UTC().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return "", fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range report.Results {
		if err := cw.Write(resultRow(r)); err != nil {
			return "", fmt.Errorf("csv: write row %s: %w", r.Ticker, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("csv: flush %s: %w", path, err)
	}

	log.Printf("[csv] wrote %d rows to %s", len(report.Results), path)
	return path, nil
}

// resultRow serializes one result with the snapshot precision: prices 2
// decimals, MACD 4, RSI/volatility/band width 1, volume ratio 2.
func resultRow(r model.ScanResult) []string {
	return []string{
		r.Ticker,
		fmt.Sprintf("%.2f", r.Price),
		fmt.Sprintf("%.2f", r.ChangePct),
		strconv.Itoa(r.RiskScore),
		fmt.Sprintf("%.1f", r.Volatility),
		fmt.Sprintf("%.2f", r.SMA20),
		fmt.Sprintf("%.2f", r.SMA50),
		fmt.Sprintf("%.1f", r.RSI),
		fmt.Sprintf("%.4f", r.MACDHist),
		fmt.Sprintf("%.1f", r.BBWidth),
		fmt.Sprintf("%.2f", r.VWAP),
		strconv.FormatInt(r.Volume, 10),
		strconv.FormatInt(r.AvgVolume20, 10),
		fmt.Sprintf("%.2f", r.VolumeRatio),
		fmt.Sprintf("%.2f", r.High52W),
		fmt.Sprintf("%.2f", r.Low52W),
		strconv.Itoa(r.SignalCount),
		r.Signals,
		r.ScanTime.UTC().Format(time.RFC3339),
	}
}

// ReadSnapshot parses a snapshot file back into results. Used by tests
// and ad-hoc tooling; the scanner itself never reads snapshots.
func ReadSnapshot(path string) ([]model.ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: %s: missing header", path)
	}
	if len(rows[0]) != len(csvHeader) {
		return nil, fmt.Errorf("csv: %s: expected %d columns, got %d", path, len(csvHeader), len(rows[0]))
	}

	results := make([]model.ScanResult, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv: %s row %d: %w", path, i+2, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func parseRow(row []string) (model.ScanResult, error) {
	var r model.ScanResult
	var err error

	r.Ticker = row[0]
	fields := []struct {
		dst *float64
		val string
	}{
		{&r.Price, row[1]}, {&r.ChangePct, row[2]}, {&r.Volatility, row[4]},
		{&r.SMA20, row[5]}, {&r.SMA50, row[6]}, {&r.RSI, row[7]},
		{&r.MACDHist, row[8]}, {&r.BBWidth, row[9]}, {&r.VWAP, row[10]},
		{&r.VolumeRatio, row[13]}, {&r.High52W, row[14]}, {&r.Low52W, row[15]},
	}
	for _, f := range fields {
		if *f.dst, err = strconv.ParseFloat(f.val, 64); err != nil {
			return r, err
		}
	}
	if r.RiskScore, err = strconv.Atoi(row[3]); err != nil {
		return r, err
	}
	if r.Volume, err = strconv.ParseInt(row[11], 10, 64); err != nil {
		return r, err
	}
	if r.AvgVolume20, err = strconv.ParseInt(row[12], 10, 64); err != nil {
		return r, err
	}
	if r.SignalCount, err = strconv.Atoi(row[16]); err != nil {
		return r, err
	}
	r.Signals = row[17]
	if r.ScanTime, err = time.Parse(time.RFC3339, row[18]); err != nil {
		return r, err
	}
	r.ScanTime = r.ScanTime.UTC()
	return r, nil
}
