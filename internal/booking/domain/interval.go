package domain

import "time"

// Interval is a half-open time range [Start, End). The start instant belongs
// to the interval, the end instant does not, so back-to-back reservations
// that touch at a boundary are legal.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval without validating it; call IsValid before
// persisting anything derived from caller input.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid reports whether the interval has positive extent.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Duration returns the extent of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
// Intervals that merely touch at a boundary do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
