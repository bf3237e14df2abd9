package logger

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	logger := Init("test-service", slog.LevelInfo)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRunID(t *testing.T) {
	ts := time.Date(2025, 1, 15, 10, 30, 0, 123456789, time.UTC)
	id := NewRunID(ts)

	if !strings.HasPrefix(id, "scan-") {
		t.Errorf("expected run id to start with 'scan-', got %s", id)
	}
	if !strings.Contains(id, "123456789") {
		t.Errorf("expected run id to contain nanoseconds, got %s", id)
	}
}
