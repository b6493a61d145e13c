package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/sciforge/navbuilder/internal/logfields"
)

// Event is a run outcome notification published for downstream tooling
// (e.g. a CI bot that opens issues for broken navigation).
type Event struct {
	Type       string    `json:"type"` // "run_completed", "run_failed", "broken_link"
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	IndexPath  string    `json:"index_path,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	URL        string    `json:"url,omitempty"`
	Label      string    `json:"label,omitempty"`
	Unresolved int       `json:"unresolved,omitempty"`
}

// Publisher publishes run events to NATS. The zero-value (or a nil pointer)
// publisher is a no-op, so call sites never branch on configuration.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// Connect creates a publisher for the given NATS URL and subject.
// An empty URL yields a no-op publisher.
func Connect(natsURL, subject string) (*Publisher, error) {
	if natsURL == "" {
		return &Publisher{}, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("navbuilder"),
		nats.MaxReconnects(3),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	slog.Info("Event publisher connected", logfields.URL(natsURL), slog.String("subject", subject))
	return &Publisher{conn: conn, subject: subject}, nil
}

// Publish sends the event. No-op when the publisher is unconfigured;
// publish failures are logged, never fatal for the run.
func (p *Publisher) Publish(ev Event) {
	if p == nil || p.conn == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("Failed to marshal event", logfields.Error(err))
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		slog.Warn("Failed to publish event", slog.String("type", ev.Type), logfields.Error(err))
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
