package domain

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day without a date, used for resource
// operating hours.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses an "HH:MM" string into a ClockTime.
func ParseClockTime(value string) (ClockTime, error) {
	var ct ClockTime
	if _, err := fmt.Sscanf(value, "%d:%d", &ct.Hour, &ct.Minute); err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", value, err)
	}
	if ct.Hour < 0 || ct.Hour > 23 || ct.Minute < 0 || ct.Minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", value)
	}
	return ct, nil
}

// String formats the clock time as "HH:MM".
func (ct ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.Hour, ct.Minute)
}

// On anchors the clock time to the calendar date of day in loc.
func (ct ClockTime) On(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	year, month, dayOfMonth := day.In(loc).Date()
	return time.Date(year, month, dayOfMonth, ct.Hour, ct.Minute, 0, 0, loc)
}

// MinutesOfDay returns the clock time as minutes since midnight, the form the
// store persists.
func (ct ClockTime) MinutesOfDay() int {
	return ct.Hour*60 + ct.Minute
}

// ClockTimeFromMinutes reverses MinutesOfDay.
func ClockTimeFromMinutes(minutes int) ClockTime {
	return ClockTime{Hour: minutes / 60, Minute: minutes % 60}
}
