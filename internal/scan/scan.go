// Package scan orchestrates a full scanner run: it drives the per-ticker
// pipeline (fetch → indicators → risk → signals → admission) across the
// configured universe with a bounded worker pool, then ranks the
// survivors into a report.
//
// Failure isolation is the core contract: any per-ticker error is
// converted to "no result for that ticker" and never aborts the batch.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cattychan/stock-scanner/internal/indicator"
	"github.com/cattychan/stock-scanner/internal/metrics"
	"github.com/cattychan/stock-scanner/internal/model"
	"github.com/cattychan/stock-scanner/internal/provider"
	"github.com/cattychan/stock-scanner/internal/risk"
	"github.com/cattychan/stock-scanner/internal/signal"
)

// Skip reasons, used as metric labels and in debug logs.
const (
	reasonFetchError     = "fetch_error"
	reasonNoData         = "no_data"
	reasonShortHistory   = "short_history"
	reasonIlliquid       = "illiquid"
	reasonLowPrice       = "low_price"
	reasonHighVolatility = "high_volatility"
	reasonHighRisk       = "high_risk"
	reasonFewSignals     = "few_signals"
)

// Config fixes everything about a scan run: the universe, the rule
// subset, the admission floors, and the pool size. There is no package
// state; a Config travels into the Scanner explicitly.
type Config struct {
	Tickers []string

	// Admission threshold and floors. MaxRisk/MaxVolatility/
	// MinAvgVolume/MinPrice are disabled when <= 0.
	MinSignals    int
	RiskEnabled   bool
	MaxRisk       int
	MaxVolatility float64
	MinAvgVolume  float64
	MinPrice      float64

	// MinHistory is the minimum bar count for a ticker to be scanned at
	// all; shorter histories are a data-unavailable skip.
	MinHistory int

	Workers      int
	FetchTimeout time.Duration

	// EnabledSignals selects a rule subset; empty means the full table.
	EnabledSignals []signal.Signal

	Battery indicator.BatteryConfig
}

// Report is the outcome of one scan run. Always produced, even when
// nothing was admitted.
type Report struct {
	Started   time.Time
	Duration  time.Duration
	Attempted int
	Admitted  int
	Results   []model.ScanResult
}

// AdmissionRate returns admitted/attempted in percent.
func (r *Report) AdmissionRate() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Admitted) / float64(r.Attempted) * 100
}

// Scanner runs the scan pipeline over a ticker universe.
type Scanner struct {
	cfg     Config
	bars    provider.BarProvider
	battery *indicator.Battery
	gen     *signal.Generator
	logger  *slog.Logger
	met     *metrics.Metrics // nil disables instrumentation
}

// New creates a Scanner. logger must be non-nil; met may be nil.
func New(cfg Config, bars provider.BarProvider, logger *slog.Logger, met *metrics.Metrics) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.Battery == (indicator.BatteryConfig{}) {
		cfg.Battery = indicator.DefaultBatteryConfig()
	}
	return &Scanner{
		cfg:     cfg,
		bars:    bars,
		battery: indicator.NewBattery(cfg.Battery),
		gen:     signal.NewGenerator(cfg.EnabledSignals),
		logger:  logger,
		met:     met,
	}
}

// Run scans the whole universe and returns the ranked report. The only
// error Run itself returns is ctx cancellation before completion;
// per-ticker failures are absorbed.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	s.logger.Info("scan started",
		slog.Int("universe", len(s.cfg.Tickers)),
		slog.Int("workers", s.cfg.Workers),
		slog.Int("min_signals", s.cfg.MinSignals))

	var (
		mu      sync.Mutex
		results []model.ScanResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, ticker := range s.cfg.Tickers {
		ticker := ticker
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err // batch cancelled, stop queueing work
			}
			res := s.scanOne(gctx, ticker)
			if res != nil {
				mu.Lock()
				results = append(results, *res)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rank(results, s.cfg.RiskEnabled)

	report := &Report{
		Started:   started,
		Duration:  time.Since(started),
		Attempted: len(s.cfg.Tickers),
		Admitted:  len(results),
		Results:   results,
	}
	if s.met != nil {
		s.met.ScanDur.Set(report.Duration.Seconds())
	}
	s.logger.Info("scan finished",
		slog.Int("attempted", report.Attempted),
		slog.Int("admitted", report.Admitted),
		slog.String("admission_rate", formatPct(report.AdmissionRate())),
		slog.Duration("took", report.Duration))
	return report, nil
}

// scanOne runs the full pipeline for one ticker. Returns nil when the
// ticker is skipped for any reason; the reason is logged and counted but
// never propagated.
func (s *Scanner) scanOne(ctx context.Context, ticker string) *model.ScanResult {
	start := time.Now()
	if s.met != nil {
		s.met.TickersScanned.Inc()
		defer func() {
			s.met.PipelineDur.Observe(time.Since(start).Seconds())
		}()
	}

	series, err := s.fetch(ctx, ticker, provider.Lookback3Month)
	if err != nil {
		reason := reasonFetchError
		if errors.Is(err, provider.ErrNoData) {
			reason = reasonNoData
		}
		if s.met != nil {
			s.met.FetchErrors.Inc()
		}
		s.skip(ticker, reason, slog.String("error", err.Error()))
		return nil
	}
	if series.Len() < s.cfg.MinHistory {
		s.skip(ticker, reasonShortHistory, slog.Int("bars", series.Len()))
		return nil
	}

	// 52-week range is best-effort: a failed year fetch degrades the
	// dependent rules instead of skipping the ticker.
	yearSeries, err := s.fetch(ctx, ticker, provider.Lookback1Year)
	if err != nil {
		s.logger.Debug("year fetch failed, using fallback range",
			slog.String("ticker", ticker), slog.String("error", err.Error()))
		yearSeries = nil
	}

	set, err := s.battery.Compute(series, yearSeries)
	if err != nil {
		s.skip(ticker, reasonShortHistory, slog.String("error", err.Error()))
		return nil
	}

	if reason, ok := s.checkFloors(set); !ok {
		s.skip(ticker, reason)
		return nil
	}

	riskScore := 0
	if s.cfg.RiskEnabled {
		riskScore = risk.Score(set)
		if s.cfg.MaxRisk > 0 && riskScore > s.cfg.MaxRisk {
			s.skip(ticker, reasonHighRisk, slog.Int("risk", riskScore))
			return nil
		}
	}

	sigs := s.gen.Generate(set)
	if sigs.Count() < s.cfg.MinSignals {
		s.skip(ticker, reasonFewSignals, slog.Int("signals", sigs.Count()))
		return nil
	}

	if s.met != nil {
		s.met.TickersAdmitted.Inc()
	}
	s.logger.Info("ticker admitted",
		slog.String("ticker", ticker),
		slog.Int("signals", sigs.Count()),
		slog.Int("risk", riskScore))
	return buildResult(ticker, set, sigs, riskScore, time.Now())
}

// fetch wraps the provider call with the per-call timeout.
func (s *Scanner) fetch(ctx context.Context, ticker string, lb provider.Lookback) (*model.BarSeries, error) {
	fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	return s.bars.DailyBars(fctx, ticker, lb)
}

// checkFloors applies the liquidity, price, and volatility floors.
func (s *Scanner) checkFloors(set *indicator.Set) (string, bool) {
	if s.cfg.MinAvgVolume > 0 {
		if !set.AvgVolume20.OK || set.AvgVolume20.V < s.cfg.MinAvgVolume {
			return reasonIlliquid, false
		}
	}
	if s.cfg.MinPrice > 0 && set.LastClose < s.cfg.MinPrice {
		return reasonLowPrice, false
	}
	if s.cfg.MaxVolatility > 0 && set.Volatility.OK && set.Volatility.V > s.cfg.MaxVolatility {
		return reasonHighVolatility, false
	}
	return "", true
}

func (s *Scanner) skip(ticker, reason string, attrs ...any) {
	if s.met != nil {
		s.met.TickersSkipped.WithLabelValues(reason).Inc()
	}
	args := append([]any{slog.String("ticker", ticker), slog.String("reason", reason)}, attrs...)
	s.logger.Debug("ticker skipped", args...)
}

// buildResult freezes the pipeline output into an immutable ScanResult
// with the snapshot rounding applied.
func buildResult(ticker string, set *indicator.Set, sigs signal.Set, riskScore int, now time.Time) *model.ScanResult {
	volumeRatio := 0.0
	avgVol := int64(0)
	if set.AvgVolume20.OK && set.AvgVolume20.V > 0 {
		avgVol = int64(set.AvgVolume20.V)
		volumeRatio = float64(set.Volume) / set.AvgVolume20.V
	}
	return &model.ScanResult{
		Ticker:      ticker,
		Price:       round(set.LastClose, 2),
		ChangePct:   round(set.ChangePct, 2),
		RiskScore:   riskScore,
		Volatility:  round(set.Volatility.V, 1),
		SMA20:       round(set.SMAShort.V, 2),
		SMA50:       round(set.SMALong.V, 2),
		RSI:         round(set.RSI.V, 1),
		MACDHist:    round(set.MACDHist.V, 4),
		BBWidth:     round(set.BBWidth.V, 1),
		VWAP:        round(set.VWAP.V, 2),
		Volume:      set.Volume,
		AvgVolume20: avgVol,
		VolumeRatio: round(volumeRatio, 2),
		High52W:     round(set.High52W.V, 2),
		Low52W:      round(set.Low52W.V, 2),
		SignalCount: sigs.Count(),
		Signals:     sigs.Join(),
		ScanTime:    now.UTC().Truncate(time.Second),
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
