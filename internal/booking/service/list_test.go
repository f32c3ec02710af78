package service

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
)

func TestListSlotsReflectsBookings(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	day := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	booked := time.Date(2026, time.April, 2, 11, 0, 0, 0, time.UTC)
	if _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		AccountID: "acc-1", ResourceID: "room-1", Start: booked, End: booked.Add(time.Hour),
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	slots, err := svc.ListSlots(context.Background(), "room-1", day, time.Hour)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	// Operating hours 09:00-21:00 yield twelve one-hour slots.
	if len(slots) != 12 {
		t.Fatalf("slots = %d, want 12", len(slots))
	}
	for _, slot := range slots {
		wantAvailable := !slot.Start.Equal(booked)
		if slot.Available != wantAvailable {
			t.Fatalf("slot %v available = %v, want %v", slot.Start, slot.Available, wantAvailable)
		}
	}
}

func TestListSlotsDefaultsWidth(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedResource(t, store, "room-1", 1500)

	day := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	slots, err := svc.ListSlots(context.Background(), "room-1", day, 0)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if len(slots) != 12 {
		t.Fatalf("slots = %d, want 12 one-hour defaults", len(slots))
	}
}

func TestListSlotsUnknownResource(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	day := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.ListSlots(context.Background(), "ghost", day, time.Hour)
	if apperrors.CodeOf(err) != apperrors.CodeResourceNotFound {
		t.Fatalf("err = %v, want resource not found", err)
	}
}

func TestListReservationsPagesUpcoming(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 1000000)
	seedResource(t, store, "room-1", 1500)

	for i := 0; i < 3; i++ {
		start := testNow.Add(time.Duration(i+2) * 24 * time.Hour)
		if _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
			AccountID: "acc-1", ResourceID: "room-1", Start: start, End: start.Add(time.Hour),
		}); err != nil {
			t.Fatalf("book %d: %v", i, err)
		}
	}

	page, err := svc.ListReservations(context.Background(), "acc-1", false, 2, "")
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(page.Reservations) != 2 || page.NextPageToken == "" {
		t.Fatalf("first page = %d rows, token %q", len(page.Reservations), page.NextPageToken)
	}

	rest, err := svc.ListReservations(context.Background(), "acc-1", false, 2, page.NextPageToken)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(rest.Reservations) != 1 || rest.NextPageToken != "" {
		t.Fatalf("second page = %d rows, token %q", len(rest.Reservations), rest.NextPageToken)
	}
	if !rest.Reservations[0].StartAt.After(page.Reservations[1].StartAt) {
		t.Fatal("pages out of order")
	}
}
