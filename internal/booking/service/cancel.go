package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/evmartins/bookhold/internal/booking/audit"
	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/storage"
	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
)

// CancelReservationRequest describes a cancellation attempt.
type CancelReservationRequest struct {
	ReservationID string
	RequesterID   string
	// Privileged bypasses ownership and cancellation-window checks.
	Privileged bool
}

// CancelReservation moves a confirmed reservation to cancelled. The transition
// is one-way and writes no ledger entry: the charge stands. Non-privileged
// requesters must own the reservation and act before the cancellation window
// closes.
func (s *Service) CancelReservation(ctx context.Context, req CancelReservationRequest) (domain.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "CancelReservation", trace.WithAttributes(
		attribute.String("reservation_id", req.ReservationID),
	))
	defer span.End()

	var reservation domain.Reservation
	err := s.store.InTx(ctx, func(st storage.Store) error {
		var err error
		reservation, err = st.GetReservation(ctx, req.ReservationID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.WithMetadata(apperrors.CodeReservationNotFound, "reservation not found", map[string]string{
					"reservation_id": req.ReservationID,
				})
			}
			return err
		}
		if reservation.Status == domain.ReservationCancelled {
			return apperrors.New(apperrors.CodeAlreadyCancelled, "reservation is already cancelled")
		}
		if !req.Privileged {
			if reservation.AccountID != req.RequesterID {
				return apperrors.New(apperrors.CodeNotAuthorized, "reservation belongs to another account")
			}
			deadline := reservation.StartAt.Add(-s.policy.CancellationWindow)
			if s.clock().UTC().After(deadline) {
				return apperrors.WithMetadata(apperrors.CodeTooLateToCancel,
					fmt.Sprintf("cancellation closed %s before start", s.policy.CancellationWindow),
					map[string]string{
						"cancellation_window": s.policy.CancellationWindow.String(),
						"starts_at":           reservation.StartAt.Format(time.RFC3339),
					})
			}
		}
		if err := st.SetReservationStatus(ctx, reservation.ID, domain.ReservationCancelled); err != nil {
			return err
		}
		reservation.Status = domain.ReservationCancelled
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.log.Info().
		Str("reservation_id", reservation.ID).
		Str("requester_id", req.RequesterID).
		Bool("privileged", req.Privileged).
		Msg("reservation cancelled")

	s.emitter.Emit(ctx, audit.Event{
		ActorType:      actorType(req.Privileged),
		InputSummary:   fmt.Sprintf("cancel reservation %s", reservation.ID),
		DetectedAction: audit.ActionReservationCancelled,
		ActionDetails: map[string]string{
			"resource_id": reservation.ResourceID,
		},
		SubjectIDs: []string{reservation.AccountID, reservation.ID},
	})
	return reservation, nil
}

func actorType(privileged bool) string {
	if privileged {
		return "operator"
	}
	return "account"
}
