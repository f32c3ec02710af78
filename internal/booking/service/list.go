package service

import (
	"context"
	"errors"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/schedule"
	"github.com/evmartins/bookhold/internal/booking/storage"
	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
	"github.com/evmartins/bookhold/internal/platform/pagination"
)

const (
	defaultReservationPageSize = 50
	maxReservationPageSize     = 200
)

// ListSlots partitions the resource's operating hours on the given day into
// width-sized slots with per-slot availability. A non-positive width falls
// back to the policy default.
func (s *Service) ListSlots(ctx context.Context, resourceID string, day time.Time, width time.Duration) ([]schedule.Slot, error) {
	resource, err := s.store.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.WithMetadata(apperrors.CodeResourceNotFound, "resource not found", map[string]string{
				"resource_id": resourceID,
			})
		}
		return nil, err
	}
	if width <= 0 {
		width = s.policy.DefaultSlotWidth
	}
	return s.scheduler.ListSlots(ctx, resource, day, width)
}

// ListReservations returns one page of the account's reservations ordered by
// start time. Past reservations are excluded unless includePast is set.
func (s *Service) ListReservations(ctx context.Context, accountID string, includePast bool, pageSize int32, pageToken string) (storage.ReservationPage, error) {
	return s.store.ListAccountReservations(ctx, accountID, storage.ListReservationsOptions{
		IncludePast: includePast,
		Now:         s.clock().UTC(),
		PageSize: pagination.ClampPageSize(pageSize, pagination.PageSizeConfig{
			Default: defaultReservationPageSize,
			Max:     maxReservationPageSize,
		}),
		PageToken: pageToken,
	})
}

// GetReservation fetches one reservation by id.
func (s *Service) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Reservation{}, apperrors.WithMetadata(apperrors.CodeReservationNotFound, "reservation not found", map[string]string{
				"reservation_id": id,
			})
		}
		return domain.Reservation{}, err
	}
	return reservation, nil
}
