package domain

import "time"

// ReservationStatus tracks the reservation lifecycle. The only transition is
// confirmed to cancelled; cancelled reservations never return to confirmed.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a confirmed or cancelled claim on a resource over a
// half-open time interval. For a fixed resource the confirmed set is
// pairwise non-overlapping.
type Reservation struct {
	ID         string
	ResourceID string
	AccountID  string
	StartAt    time.Time
	EndAt      time.Time
	Status     ReservationStatus
	Note       string
	CreatedAt  time.Time
}

// Interval returns the reservation's half-open time range.
func (r Reservation) Interval() Interval {
	return Interval{Start: r.StartAt, End: r.EndAt}
}
