package worker

import (
	"context"
	"log/slog"

	"bahay/internal/audit"
)

// Worker consumes audit events from a channel and fans them out to the
// configured sinks (store, Kafka). Sink failures are logged and skipped so a
// flaky sink never stalls the pipeline.
type Worker struct {
	sinks  []audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func New(inbox <-chan audit.Event, logger *slog.Logger, sinks ...audit.Sink) *Worker {
	return &Worker{sinks: sinks, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled, then flushes whatever
// is still buffered so shutdown does not lose the tail of the trail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.flush(context.WithoutCancel(ctx))
			return ctx.Err()
		case event := <-w.inbox:
			w.dispatch(ctx, event)
		}
	}
}

func (w *Worker) flush(ctx context.Context) {
	for {
		select {
		case event := <-w.inbox:
			w.dispatch(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) dispatch(ctx context.Context, event audit.Event) {
	for _, sink := range w.sinks {
		if err := sink.Append(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "audit sink append failed",
				"error", err,
				"action", event.Action,
			)
		}
	}
}
