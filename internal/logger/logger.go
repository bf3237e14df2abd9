// Package logger provides structured logging using Go 1.21's log/slog.
// It sets up a JSON handler with service-level context and tags every
// record of a scan run with a run ID.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Init creates and returns a structured logger for the given service.
// The logger outputs JSON to stdout with the service name embedded.
func Init(service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", service),
	)

	// Set as default so log/slog.Info() etc. also use structured output
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a config string to a slog level. Unknown values fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewRunID creates an identifier for one scan run.
// Format: "scan-{unixNano}" — lightweight, no UUID dependency.
func NewRunID(ts time.Time) string {
	return fmt.Sprintf("scan-%d", ts.UnixNano())
}

// WithRun returns a logger whose every record carries the run ID.
func WithRun(base *slog.Logger, runID string) *slog.Logger {
	return base.With(slog.String("run_id", runID))
}
