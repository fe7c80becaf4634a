package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Recorder decouples the engine from audit persistence. Emit stamps the event
// and hands it to the worker through a bounded inbox; a full inbox drops the
// event with a warning rather than stalling a command.
type Recorder struct {
	inbox chan Event
	log   *slog.Logger
}

func NewRecorder(buffer int, log *slog.Logger) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &Recorder{inbox: make(chan Event, buffer), log: log}
}

func (r *Recorder) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case r.inbox <- event:
	default:
		r.log.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action, "actor", event.Actor)
	}
}

// Inbox exposes the event channel for the worker.
func (r *Recorder) Inbox() <-chan Event { return r.inbox }
