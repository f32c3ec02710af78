// Package audit emits structured audit events toward an external collaborator.
// Emission is best-effort: a failed publish is logged and discarded, never
// surfaced to the operation that produced the event.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Detected actions emitted by the engine.
const (
	ActionReservationCreated   = "reservation.created"
	ActionReservationCancelled = "reservation.cancelled"
	ActionLedgerCharged        = "ledger.charged"
	ActionLedgerCredited       = "ledger.credited"
	ActionPurchaseCompleted    = "purchase.completed"
)

// Event is one structured audit record.
type Event struct {
	ActorType      string            `json:"actor_type"`
	InputSummary   string            `json:"input_summary"`
	DetectedAction string            `json:"detected_action"`
	ActionDetails  map[string]string `json:"action_details,omitempty"`
	SubjectIDs     []string          `json:"subject_ids,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Sink delivers audit events to their durable home.
type Sink interface {
	Publish(ctx context.Context, evt Event) error
}

// Emitter records audit events through a sink.
type Emitter struct {
	sink  Sink
	log   zerolog.Logger
	clock func() time.Time
}

// NewEmitter creates an emitter. A nil sink yields a no-op emitter.
func NewEmitter(sink Sink, log zerolog.Logger) *Emitter {
	return &Emitter{sink: sink, log: log, clock: time.Now}
}

// Emit publishes one audit event. It never fails the caller.
func (e *Emitter) Emit(ctx context.Context, evt Event) {
	if e == nil || e.sink == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.clock().UTC()
	}
	if err := e.sink.Publish(ctx, evt); err != nil {
		e.log.Warn().
			Err(err).
			Str("detected_action", evt.DetectedAction).
			Strs("subject_ids", evt.SubjectIDs).
			Msg("drop audit event")
	}
}

// LogSink writes audit events to the process log. It is the fallback sink
// when no message broker is configured.
type LogSink struct {
	Log zerolog.Logger
}

// Publish implements Sink.
func (s LogSink) Publish(_ context.Context, evt Event) error {
	s.Log.Info().
		Str("actor_type", evt.ActorType).
		Str("input_summary", evt.InputSummary).
		Str("detected_action", evt.DetectedAction).
		Strs("subject_ids", evt.SubjectIDs).
		Interface("action_details", evt.ActionDetails).
		Time("timestamp", evt.Timestamp).
		Msg("audit event")
	return nil
}
