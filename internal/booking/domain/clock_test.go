package domain

import (
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	t.Parallel()

	ct, err := ParseClockTime("09:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ct.Hour != 9 || ct.Minute != 30 {
		t.Fatalf("clock time = %+v", ct)
	}
	if ct.String() != "09:30" {
		t.Fatalf("string = %q, want 09:30", ct.String())
	}

	if _, err := ParseClockTime("25:00"); err == nil {
		t.Fatal("expected out-of-range hour error")
	}
	if _, err := ParseClockTime("open"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestClockTimeOnAnchorsToDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, time.March, 10, 17, 45, 12, 0, time.UTC)
	ct := ClockTime{Hour: 9, Minute: 0}
	got := ct.On(day, time.UTC)
	want := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("anchored = %v, want %v", got, want)
	}
}

func TestClockTimeMinutesRoundTrip(t *testing.T) {
	t.Parallel()

	ct := ClockTime{Hour: 21, Minute: 15}
	if got := ClockTimeFromMinutes(ct.MinutesOfDay()); got != ct {
		t.Fatalf("round trip = %+v, want %+v", got, ct)
	}
}
