package service

import (
	"context"
	"testing"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
)

func bookAhead(t *testing.T, svc *Service, accountID string, lead time.Duration) domain.Reservation {
	t.Helper()
	start := testNow.Add(lead)
	reservation, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		AccountID:  accountID,
		ResourceID: "room-1",
		Start:      start,
		End:        start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return reservation
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	reservation := bookAhead(t, svc, "acc-1", 3*time.Hour)
	charged, err := store.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}

	cancelled, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "acc-1",
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.ReservationCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	// No refund: the balance stays where the charge left it.
	after, err := store.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if after.Balance != charged.Balance {
		t.Fatalf("balance = %d, want %d", after.Balance, charged.Balance)
	}

	// The slot frees up for other bookings.
	available, err := svc.IsAvailable(context.Background(), "room-1", reservation.Interval())
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !available {
		t.Fatal("cancelled reservation must release its interval")
	}
}

func TestCancelReservationMissing(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: "ghost",
		RequesterID:   "acc-1",
	})
	if apperrors.CodeOf(err) != apperrors.CodeReservationNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCancelReservationTwiceFails(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	reservation := bookAhead(t, svc, "acc-1", 3*time.Hour)
	if _, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "acc-1",
	}); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "acc-1",
	})
	if apperrors.CodeOf(err) != apperrors.CodeAlreadyCancelled {
		t.Fatalf("err = %v, want already cancelled", err)
	}
}

func TestCancelReservationRequiresOwnership(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	reservation := bookAhead(t, svc, "acc-1", 3*time.Hour)
	_, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "acc-2",
	})
	if apperrors.CodeOf(err) != apperrors.CodeNotAuthorized {
		t.Fatalf("err = %v, want not authorized", err)
	}

	record, err := svc.GetReservation(context.Background(), reservation.ID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if record.Status != domain.ReservationConfirmed {
		t.Fatalf("status = %q, want confirmed", record.Status)
	}
}

func TestCancelReservationInsideWindowFails(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	// Starts 30 minutes out, inside the one-hour cancellation window.
	reservation := bookAhead(t, svc, "acc-1", 30*time.Minute)
	_, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "acc-1",
	})
	if apperrors.CodeOf(err) != apperrors.CodeTooLateToCancel {
		t.Fatalf("err = %v, want too late to cancel", err)
	}
}

func TestCancelReservationPrivilegedBypassesWindowAndOwnership(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	reservation := bookAhead(t, svc, "acc-1", 30*time.Minute)
	cancelled, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "operator-1",
		Privileged:    true,
	})
	if err != nil {
		t.Fatalf("privileged cancel: %v", err)
	}
	if cancelled.Status != domain.ReservationCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}
}

func TestCancelReservationExactlyAtWindowBoundary(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedAccount(t, store, "acc-1", 100000)
	seedResource(t, store, "room-1", 1500)

	// Starts exactly one hour out: now equals the deadline, so the
	// cancellation is still allowed.
	reservation := bookAhead(t, svc, "acc-1", time.Hour)
	if _, err := svc.CancelReservation(context.Background(), CancelReservationRequest{
		ReservationID: reservation.ID,
		RequesterID:   "acc-1",
	}); err != nil {
		t.Fatalf("boundary cancel: %v", err)
	}
}
