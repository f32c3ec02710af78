// Package schedule partitions a resource's operating hours into fixed-width
// slots and tags each one with its availability.
package schedule

import (
	"context"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
)

// AvailabilityChecker reports whether an interval is free on a resource.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, resourceID string, iv domain.Interval) (bool, error)
}

// Slot is one fixed-width sub-interval of a resource's operating hours.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Scheduler computes slot availability in a fixed reference location.
type Scheduler struct {
	checker AvailabilityChecker
	loc     *time.Location
}

// New creates a scheduler. A nil location defaults to UTC.
func New(checker AvailabilityChecker, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{checker: checker, loc: loc}
}

// ListSlots partitions the resource's operating hours on the calendar day of
// day into width-sized slots. A final partial slot that would extend past
// closing time is dropped. Availability is recomputed from current
// reservation state on every call.
func (s *Scheduler) ListSlots(ctx context.Context, resource domain.Resource, day time.Time, width time.Duration) ([]Slot, error) {
	if width <= 0 {
		return nil, apperrors.New(apperrors.CodeSlotWidthInvalid, "slot width must be positive")
	}

	open := resource.OpenTime.On(day, s.loc)
	close := resource.CloseTime.On(day, s.loc)

	var slots []Slot
	for cursor := open; !cursor.Add(width).After(close); cursor = cursor.Add(width) {
		iv := domain.NewInterval(cursor, cursor.Add(width))
		available, err := s.checker.IsAvailable(ctx, resource.ID, iv)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{
			Start:     iv.Start,
			End:       iv.End,
			Available: available,
		})
	}
	return slots, nil
}
