// Package service coordinates reservations: validation, availability checks,
// the atomic charge-and-book unit of work, and the cancellation policy.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/evmartins/bookhold/internal/booking/audit"
	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/schedule"
	"github.com/evmartins/bookhold/internal/booking/storage"
)

// Policy bounds reservation requests and cancellations.
type Policy struct {
	// MaxDuration caps a single reservation's length.
	MaxDuration time.Duration
	// MinLeadTime is how far in the future a reservation must start.
	MinLeadTime time.Duration
	// CancellationWindow is the cutoff before start after which
	// non-privileged cancellation is refused.
	CancellationWindow time.Duration
	// DefaultSlotWidth is used when a slot query passes no width.
	DefaultSlotWidth time.Duration
}

// DefaultPolicy returns the engine's standard booking policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxDuration:        8 * time.Hour,
		MinLeadTime:        15 * time.Minute,
		CancellationWindow: time.Hour,
		DefaultSlotWidth:   time.Hour,
	}
}

// Service is the booking coordinator.
type Service struct {
	store     storage.Store
	emitter   *audit.Emitter
	policy    Policy
	scheduler *schedule.Scheduler
	locks     *resourceLocks
	log       zerolog.Logger
	tracer    trace.Tracer
	clock     func() time.Time
}

// New creates a booking service over the given store. A nil location pins
// slot queries to UTC.
func New(store storage.Store, emitter *audit.Emitter, policy Policy, loc *time.Location, log zerolog.Logger) *Service {
	s := &Service{
		store:   store,
		emitter: emitter,
		policy:  policy,
		locks:   newResourceLocks(),
		log:     log,
		tracer:  otel.Tracer("bookhold/booking"),
		clock:   time.Now,
	}
	s.scheduler = schedule.New(s, loc)
	return s
}

// IsAvailable reports whether the interval is free of confirmed reservations
// on the resource. The answer is advisory: a concurrent booking can invalidate
// it, so CreateReservation re-checks inside its unit of work using the same
// predicate.
func (s *Service) IsAvailable(ctx context.Context, resourceID string, iv domain.Interval) (bool, error) {
	return isAvailable(ctx, s.store, resourceID, iv)
}

func isAvailable(ctx context.Context, st storage.Store, resourceID string, iv domain.Interval) (bool, error) {
	overlapping, err := st.ListConfirmedOverlapping(ctx, resourceID, iv)
	if err != nil {
		return false, err
	}
	for _, existing := range overlapping {
		if existing.Interval().Overlaps(iv) {
			return false, nil
		}
	}
	return true, nil
}
