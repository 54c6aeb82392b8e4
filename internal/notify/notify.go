// Package notify publishes run events to NATS so site builders and preview
// servers can react to regenerated inputs.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

const flushTimeout = 5 * time.Second

// Event is the JSON payload published after every run.
type Event struct {
	RunID      string    `json:"run_id"`
	Mode       string    `json:"mode"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Changed    []string  `json:"changed"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventFromReport builds the event for a finished run.
func EventFromReport(r *sitegen.Report) Event {
	return Event{
		RunID:      r.RunID,
		Mode:       string(r.Mode),
		Outcome:    string(r.Outcome),
		Error:      r.Error,
		DurationMS: r.Duration().Milliseconds(),
		Changed:    r.Changed(),
		Timestamp:  r.End,
	}
}

// conn is the subset of *nats.Conn used by the publisher.
type conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// Publisher sends run events to a NATS subject.
type Publisher struct {
	conn    conn
	subject string
}

// Connect dials the NATS server at url.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("sitegen"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS publisher connected", slog.String("url", nc.ConnectedUrlRedacted()), logfields.Subject(subject))
	return &Publisher{conn: nc, subject: subject}, nil
}

// Publish sends one event and waits for the server to acknowledge the flush.
func (p *Publisher) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := p.conn.FlushTimeout(flushTimeout); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	slog.Debug("Published run event", logfields.RunID(ev.RunID), logfields.Subject(p.subject))
	return nil
}

// RecordRun implements sitegen.RunSink.
func (p *Publisher) RecordRun(_ context.Context, r *sitegen.Report) error {
	return p.Publish(EventFromReport(r))
}

// Close closes the connection.
func (p *Publisher) Close() {
	p.conn.Close()
}

var _ sitegen.RunSink = (*Publisher)(nil)
