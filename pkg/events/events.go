// Package events wraps NATS publish/subscribe for the domain events the
// collaborator layer raises around an optimization run: a booking being
// requested, and a schedule being (re-)optimized. The optimizer core itself
// never publishes or subscribes to anything.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/salonsys/scheduling-service/internal/config"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// Event subjects this service publishes or subscribes to.
const (
	BookingRequestedEvent  = "booking.requested"
	ScheduleOptimizedEvent = "schedule.optimized"
)

// Publisher publishes events to NATS. A nil underlying connection makes it
// behave as a no-op, so local development without a NATS broker still works.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// Subscriber subscribes to NATS subjects.
type Subscriber struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// Connect opens the NATS connection.
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to nats: %w", err)
	}
	return conn, nil
}

// NewPublisher creates a publisher bound to conn. conn may be nil, in which
// case Publish is a logged no-op.
func NewPublisher(conn *nats.Conn, logger *logger.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// Publish marshals data as JSON and publishes it on subject.
func (p *Publisher) Publish(subject string, data interface{}) error {
	if p.conn == nil {
		p.logger.Debug("event publishing skipped, no nats connection", "subject", subject)
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("events: failed to marshal %s payload: %w", subject, err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("events: failed to publish %s: %w", subject, err)
	}
	p.logger.Debug("published event", "subject", subject)
	return nil
}

// NewSubscriber creates a subscriber bound to conn.
func NewSubscriber(conn *nats.Conn, logger *logger.Logger) *Subscriber {
	return &Subscriber{conn: conn, logger: logger}
}

// Subscribe registers handler for every message on subject.
func (s *Subscriber) Subscribe(subject string, handler func([]byte) error) error {
	_, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			s.logger.Error("failed to handle event", "subject", subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("events: failed to subscribe to %s: %w", subject, err)
	}
	return nil
}
