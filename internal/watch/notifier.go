package watch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/buildforge/internal/config"
	"git.home.luguber.info/inful/buildforge/internal/logfields"
	"github.com/nats-io/nats.go"
)

// RunEvent is the payload published for each completed run in watch mode.
type RunEvent struct {
	RootPath   string    `json:"root_path"`
	Scheme     string    `json:"scheme,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Generated  bool      `json:"generated"`
	FinishedAt time.Time `json:"finished_at"`
}

// Notifier publishes run outcomes to NATS.
type Notifier struct {
	conn    *nats.Conn
	subject string
}

// NewNotifier connects to NATS using the notifications configuration.
func NewNotifier(cfg *config.NotificationsConfig) (*Notifier, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("notifications are disabled")
	}
	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Notifier{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends one run event. Failures are logged, not propagated: a broken
// notification channel must not fail builds.
func (n *Notifier) Publish(event RunEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("Failed to marshal run event", logfields.Error(err))
		return
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		slog.Warn("Failed to publish run event", logfields.Error(err), slog.String("subject", n.subject))
	}
}

// Close drains and closes the connection.
func (n *Notifier) Close() {
	if n.conn != nil {
		_ = n.conn.Drain()
	}
}
