package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cattychan/stock-scanner/internal/scan"
)

// sheetRange is the worksheet the upload overwrites. The whole sheet is
// cleared and rewritten on every run; there is no append mode.
const sheetRange = "Sheet1"

// SheetsUploader pushes the ranked results into a Google Sheets
// worksheet using a service-account credential.
type SheetsUploader struct {
	svc     *sheets.Service
	sheetID string
}

// NewSheetsUploader builds the Sheets client from a JSON service-account
// credential.
func NewSheetsUploader(ctx context.Context, credentialsJSON []byte, sheetID string) (*SheetsUploader, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &SheetsUploader{svc: svc, sheetID: sheetID}, nil
}

// Upload clears the worksheet and writes the header plus one row per
// result. Values go in as USER_ENTERED so numbers stay numbers on the
// sheet side.
func (u *SheetsUploader) Upload(ctx context.Context, report *scan.Report) error {
	_, err := u.svc.Spreadsheets.Values.Clear(u.sheetID, sheetRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: clear: %w", err)
	}

	rows := make([][]interface{}, 0, len(report.Results)+1)
	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	rows = append(rows, header)
	for _, r := range report.Results {
		rows = append(rows, []interface{}{
			r.Ticker, r.Price, r.ChangePct, r.RiskScore, r.Volatility,
			r.SMA20, r.SMA50, r.RSI, r.MACDHist, r.BBWidth, r.VWAP,
			r.Volume, r.AvgVolume20, r.VolumeRatio, r.High52W, r.Low52W,
			r.SignalCount, r.Signals, r.ScanTime.UTC().Format(time.RFC3339),
		})
	}

	_, err = u.svc.Spreadsheets.Values.Update(u.sheetID, sheetRange+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update: %w", err)
	}

	log.Printf("[sheets] uploaded %d rows to %s", len(report.Results), u.sheetID)
	return nil
}
