// Package metrics exposes Prometheus metrics for a scan run and an
// optional /metrics HTTP endpoint.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the scanner.
type Metrics struct {
	TickersScanned  prometheus.Counter
	TickersAdmitted prometheus.Counter
	TickersSkipped  *prometheus.CounterVec // labels: reason
	FetchErrors     prometheus.Counter
	PipelineDur     prometheus.Histogram
	ScanDur         prometheus.Gauge
	CacheHits       prometheus.Counter
}

// New registers and returns all scanner metrics.
func New() *Metrics {
	m := &Metrics{
		TickersScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_tickers_scanned_total",
			Help: "Tickers attempted across all runs",
		}),
		TickersAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_tickers_admitted_total",
			Help: "Tickers that passed admission",
		}),
		TickersSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_tickers_skipped_total",
			Help: "Tickers skipped, by reason",
		}, []string{"reason"}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_fetch_errors_total",
			Help: "Bar fetch failures (network, rate limit, no data)",
		}),
		PipelineDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanner_pipeline_duration_seconds",
			Help:    "Per-ticker pipeline latency (fetch through admission)",
			Buckets: prometheus.DefBuckets,
		}),
		ScanDur: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scanner_scan_duration_seconds",
			Help: "Wall-clock duration of the last full scan",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_bar_cache_hits_total",
			Help: "Bar series served from the Redis cache",
		}),
	}

	prometheus.MustRegister(
		m.TickersScanned,
		m.TickersAdmitted,
		m.TickersSkipped,
		m.FetchErrors,
		m.PipelineDur,
		m.ScanDur,
		m.CacheHits,
	)
	return m
}

// Serve starts the /metrics endpoint in a background goroutine. The
// server lives for the process lifetime; a batch run does not need
// graceful shutdown.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("[metrics] serving on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("[metrics] server stopped: %v", err)
		}
	}()
}
