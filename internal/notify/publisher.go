package notify

import (
	"context"
	"log/slog"
)

// EmailMessage is the payload consumed by the notification collaborator.
// Delivery is its concern; this core only publishes.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Publisher is a fire-and-forget dispatch contract. Implementations must not
// be load-bearing for the purchase path: callers log a failed publish and
// move on.
type Publisher interface {
	Publish(ctx context.Context, msg EmailMessage, topic string) error
}

// LogPublisher writes messages to the log instead of a broker. Used when no
// AMQP endpoint is configured (local development).
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, msg EmailMessage, topic string) error {
	p.log.Info("notification (no broker configured)",
		"topic", topic,
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
