package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cattychan/stock-scanner/config"
	"github.com/cattychan/stock-scanner/internal/logger"
	"github.com/cattychan/stock-scanner/internal/markethours"
	"github.com/cattychan/stock-scanner/internal/metrics"
	"github.com/cattychan/stock-scanner/internal/notification"
	"github.com/cattychan/stock-scanner/internal/provider"
	"github.com/cattychan/stock-scanner/internal/report"
	"github.com/cattychan/stock-scanner/internal/scan"
	sigrules "github.com/cattychan/stock-scanner/internal/signal"
	redisstore "github.com/cattychan/stock-scanner/internal/store/redis"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg := config.Load()
	slogger := logger.Init("stock-scanner", logger.ParseLevel(cfg.LogLevel))
	slogger = logger.WithRun(slogger, logger.NewRunID(time.Now()))

	if now := time.Now(); !markethours.IsTradingDay(now) {
		slogger.Warn("market closed today, bars reflect the last session",
			slog.String("status", markethours.StatusString(now)))
	}

	enabled, err := sigrules.FromNames(cfg.ParseSignals())
	if err != nil {
		slogger.Error("bad ENABLED_SIGNALS", slog.String("error", err.Error()))
		os.Exit(2)
	}

	var met *metrics.Metrics
	if cfg.MetricsAddr != "" {
		met = metrics.New()
		metrics.Serve(cfg.MetricsAddr)
	}

	// ---- Provider, optionally wrapped with the Redis bar cache ----
	fetchTimeout := time.Duration(cfg.FetchTimeoutS) * time.Second
	var bars provider.BarProvider = provider.NewYahooClient(fetchTimeout)
	if cfg.RedisAddr != "" {
		cache, err := redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      time.Duration(cfg.BarCacheTTLS) * time.Second,
		})
		if err != nil {
			slogger.Warn("redis unavailable, scanning without bar cache",
				slog.String("error", err.Error()))
		} else {
			defer cache.Close()
			cached := provider.NewCached(bars, cache)
			if met != nil {
				cached.OnHit(met.CacheHits.Inc)
			}
			bars = cached
		}
	}

	scanner := scan.New(scan.Config{
		Tickers:        cfg.ParseTickers(),
		MinSignals:     cfg.MinSignals,
		RiskEnabled:    cfg.RiskFilter,
		MaxRisk:        cfg.MaxRiskScore,
		MaxVolatility:  cfg.MaxVolatility,
		MinAvgVolume:   cfg.MinAvgVolume,
		MinPrice:       cfg.MinPrice,
		MinHistory:     cfg.MinHistory,
		Workers:        cfg.ScanWorkers,
		FetchTimeout:   fetchTimeout,
		EnabledSignals: enabled,
	}, bars, slogger, met)

	// ---- Graceful shutdown on SIGINT/SIGTERM ----
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		slogger.Warn("shutdown signal received", slog.String("signal", s.String()))
		cancel()
	}()

	result, err := scanner.Run(ctx)
	if err != nil {
		slogger.Error("scan aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The summary always prints, even for an empty run.
	report.NewPrinter(os.Stdout).Print(result)

	// CSV snapshot failure is the only fatal sink failure.
	if _, err := report.NewCSVWriter(cfg.OutputDir).Write(result); err != nil {
		slogger.Error("snapshot write failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	uploadSheets(ctx, cfg, slogger, result)
	sendAlerts(ctx, cfg, result)
}

// uploadSheets pushes the results to Google Sheets when both credential
// env vars are present. Failures are logged, never fatal: the CSV is
// already on disk.
func uploadSheets(ctx context.Context, cfg *config.Config, slogger *slog.Logger, result *scan.Report) {
	if cfg.GoogleCredentials == "" || cfg.GoogleSheetID == "" {
		return
	}
	// GOOGLE_CREDENTIALS carries the raw service-account JSON, not a path.
	up, err := report.NewSheetsUploader(ctx, []byte(cfg.GoogleCredentials), cfg.GoogleSheetID)
	if err != nil {
		slogger.Warn("sheets upload skipped", slog.String("error", err.Error()))
		return
	}
	if err := up.Upload(ctx, result); err != nil {
		slogger.Warn("sheets upload failed", slog.String("error", err.Error()))
	}
}

// sendAlerts delivers the run digest to every configured channel. With
// nothing configured the digest still lands in the process log.
func sendAlerts(ctx context.Context, cfg *config.Config, result *scan.Report) {
	var notifiers []notification.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifiers = append(notifiers, notification.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID))
	}
	if cfg.AlertWebhookURL != "" {
		notifiers = append(notifiers, notification.NewWebhookNotifier(cfg.AlertWebhookURL))
	}
	if len(notifiers) == 0 {
		notifiers = append(notifiers, notification.NewLogNotifier())
	}
	notification.SendAll(ctx, notifiers, notification.BuildDigest(result))
}
