package audit

import (
	"context"
	"log/slog"
)

// Sink forwards audit events to an external system, e.g. Kafka.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes events from the recorder's inbox, persists them, and
// forwards them to an optional sink. Sink failures are logged, not fatal;
// the in-process store stays authoritative.
type Worker struct {
	store Store
	sink  Sink
	inbox <-chan Event
	log   *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, log *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
			if w.sink == nil {
				continue
			}
			if err := w.sink.Publish(ctx, event); err != nil {
				w.log.ErrorContext(ctx, "audit sink publish failed",
					"error", err, "event_id", event.ID, "action", event.Action)
			}
		}
	}
}
