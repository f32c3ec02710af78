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
	"github.com/evmartins/bookhold/internal/booking/ledger"
	"github.com/evmartins/bookhold/internal/booking/storage"
	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
)

// CreateReservationRequest describes a booking attempt.
type CreateReservationRequest struct {
	AccountID  string
	ResourceID string
	Start      time.Time
	End        time.Time
	Note       string
}

// CreateReservation books the resource for the requested interval and charges
// the account. Validation runs first; then the cost computation, availability
// re-check, debit, reservation insert, and transaction record form one atomic
// unit of work serialized per resource. On conflict or insufficient funds no
// effect persists.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (domain.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "CreateReservation", trace.WithAttributes(
		attribute.String("resource_id", req.ResourceID),
		attribute.String("account_id", req.AccountID),
	))
	defer span.End()

	iv := domain.NewInterval(req.Start, req.End)
	if !iv.IsValid() {
		return domain.Reservation{}, apperrors.New(apperrors.CodeIntervalInvalid, "start must be before end")
	}
	if iv.Duration() > s.policy.MaxDuration {
		return domain.Reservation{}, apperrors.WithMetadata(apperrors.CodeDurationExceeded,
			fmt.Sprintf("reservation exceeds maximum duration of %s", s.policy.MaxDuration),
			map[string]string{"max_duration": s.policy.MaxDuration.String()})
	}
	now := s.clock().UTC()
	if req.Start.Before(now.Add(s.policy.MinLeadTime)) {
		return domain.Reservation{}, apperrors.WithMetadata(apperrors.CodeLeadTimeTooShort,
			fmt.Sprintf("reservation must start at least %s from now", s.policy.MinLeadTime),
			map[string]string{"min_lead_time": s.policy.MinLeadTime.String()})
	}

	resource, err := s.store.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Reservation{}, apperrors.WithMetadata(apperrors.CodeResourceNotFound, "resource not found", map[string]string{
				"resource_id": req.ResourceID,
			})
		}
		return domain.Reservation{}, err
	}

	release := s.locks.acquire(resource.ID)
	defer release()

	cost := domain.CostFor(resource.HourlyRate, iv)
	reservation := domain.Reservation{
		ID:         domain.NewID(),
		ResourceID: resource.ID,
		AccountID:  req.AccountID,
		StartAt:    req.Start.UTC(),
		EndAt:      req.End.UTC(),
		Status:     domain.ReservationConfirmed,
		Note:       req.Note,
		CreatedAt:  now,
	}
	record := domain.Transaction{
		ID:            domain.NewID(),
		AccountID:     req.AccountID,
		Amount:        cost,
		ReservationID: reservation.ID,
		Status:        domain.TransactionCompleted,
		CreatedAt:     now,
	}

	err = s.store.InTx(ctx, func(st storage.Store) error {
		available, err := isAvailable(ctx, st, resource.ID, iv)
		if err != nil {
			return err
		}
		if !available {
			return apperrors.WithMetadata(apperrors.CodeReservationConflict, "interval overlaps a confirmed reservation", map[string]string{
				"resource_id": resource.ID,
			})
		}
		if _, err := ledger.Debit(ctx, st, req.AccountID, cost); err != nil {
			return err
		}
		if err := st.CreateReservation(ctx, reservation); err != nil {
			return err
		}
		return st.CreateTransaction(ctx, record)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.log.Info().
		Str("reservation_id", reservation.ID).
		Str("resource_id", resource.ID).
		Str("account_id", req.AccountID).
		Str("cost", cost.String()).
		Msg("reservation created")

	s.emitter.Emit(ctx, audit.Event{
		ActorType:      "account",
		InputSummary:   fmt.Sprintf("book %s from %s to %s", resource.Name, req.Start.UTC().Format(time.RFC3339), req.End.UTC().Format(time.RFC3339)),
		DetectedAction: audit.ActionReservationCreated,
		ActionDetails: map[string]string{
			"resource_id": resource.ID,
			"cost":        cost.String(),
		},
		SubjectIDs: []string{req.AccountID, reservation.ID},
	})
	s.emitter.Emit(ctx, audit.Event{
		ActorType:      "account",
		InputSummary:   fmt.Sprintf("charge %s for reservation", cost),
		DetectedAction: audit.ActionLedgerCharged,
		ActionDetails: map[string]string{
			"amount":         cost.String(),
			"reservation_id": reservation.ID,
		},
		SubjectIDs: []string{req.AccountID, record.ID},
	})
	return reservation, nil
}
