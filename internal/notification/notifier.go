// Package notification delivers post-run scan digests to external
// channels (Telegram, generic webhooks). Delivery is best-effort: the
// scan results are already on disk before any alert goes out.
package notification

import (
	"context"
	"log"
)

// AlertLevel represents the severity of an alert.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "INFO"
	AlertWarning AlertLevel = "WARNING"
)

// Alert is one message to deliver.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// Notifier is the interface for all notification backends.
type Notifier interface {
	// Send delivers an alert. Returns error if delivery fails.
	Send(ctx context.Context, alert Alert) error
}

// LogNotifier logs alerts instead of sending them (useful for
// development and as a fallback when no channel is configured).
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, alert Alert) error {
	log.Printf("[notify] [%s] %s: %s", alert.Level, alert.Title, alert.Message)
	return nil
}

// SendAll fans one alert out to every backend. Failures are logged and
// swallowed; a dead channel never affects the others or the caller.
func SendAll(ctx context.Context, notifiers []Notifier, alert Alert) {
	for _, n := range notifiers {
		if err := n.Send(ctx, alert); err != nil {
			log.Printf("[notify] delivery failed: %v", err)
		}
	}
}
