// AngelaMos | 2026
// events.go

package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/config"
)

const (
	PaymentVerified = "payment.verified"
	CaseSubmitted   = "case.submitted"
	CaseSolved      = "case.solved"
	ContactReplied  = "contact.replied"
	UserRegistered  = "user.registered"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// New returns an AMQP publisher when events are enabled and a logging no-op
// otherwise.
func New(cfg config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	if !cfg.Enabled || cfg.URL == "" {
		return NewNopPublisher(logger), nil
	}
	return NewAMQPPublisher(cfg.URL, cfg.Exchange, logger)
}

type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.DebugContext(ctx, "event dropped, publisher disabled", "type", e.Type)
	return nil
}

func (p *NopPublisher) Close() error {
	return nil
}

// Emit publishes best-effort: a broker failure is logged and never fails the
// request that produced the event.
func Emit(ctx context.Context, p Publisher, logger *slog.Logger, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(ctx, "publish event failed", "type", e.Type, "error", err)
	}
}
