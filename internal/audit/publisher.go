package audit

import (
	"context"
	"log/slog"

	"bahay/pkg/requestcontext"
)

// Sink receives audit events. The postgres/memory stores and the Kafka
// publisher all satisfy it so the worker can fan out.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher hands events to a background worker through a bounded inbox.
// Emit never blocks the request path: when the inbox is full the event is
// dropped and logged, since audit here is best-effort observability, not a
// ledger.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher and the inbox a Worker should drain.
func NewPublisher(buffer int, logger *slog.Logger) (*Publisher, <-chan Event) {
	inbox := make(chan Event, buffer)
	return &Publisher{inbox: inbox, logger: logger}, inbox
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"subject", event.Subject,
		)
	}
	return nil
}
