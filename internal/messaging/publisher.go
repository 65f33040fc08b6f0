// Package messaging publishes portal domain events to NATS. The portal
// works without a broker; when NATS is unreachable the service falls
// back to the no-op publisher.
package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher emits domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(subject string, payload any) error
	Close()
}

// RegistrationCreated is emitted when a registration record is created.
type RegistrationCreated struct {
	RegistrationID string    `json:"registrationId"`
	EventID        string    `json:"eventId"`
	StudentID      string    `json:"studentId"`
	Status         string    `json:"status"`
	At             time.Time `json:"at"`
}

// RegistrationDecided is emitted when a house admin approves or rejects.
type RegistrationDecided struct {
	RegistrationID string    `json:"registrationId"`
	Status         string    `json:"status"`
	At             time.Time `json:"at"`
}

// ScoresSubmitted is emitted after a judge's batch score submission.
type ScoresSubmitted struct {
	EventID string    `json:"eventId"`
	Applied int       `json:"applied"`
	At      time.Time `json:"at"`
}

// NATSPublisher publishes JSON-encoded events to NATS subjects under a
// common prefix.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher connects to NATS.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	logger.Info("NATS publisher initialized", "url", url, "prefix", prefix)
	return &NATSPublisher{conn: nc, prefix: prefix, logger: logger}, nil
}

// Publish sends payload as JSON to "<prefix>.<subject>".
func (p *NATSPublisher) Publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event", "subject", subject, "error", err)
		return err
	}
	full := p.prefix + "." + subject
	if err := p.conn.Publish(full, data); err != nil {
		p.logger.Error("failed to publish event", "subject", full, "error", err)
		return err
	}
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}

// Noop discards all events.
type Noop struct{}

func (Noop) Publish(subject string, payload any) error { return nil }
func (Noop) Close()                                    {}
