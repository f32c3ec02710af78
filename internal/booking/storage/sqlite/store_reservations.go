package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/storage"
)

const reservationColumns = `id, resource_id, account_id, start_at, end_at, status, note, created_at`

// CreateReservation inserts one reservation record.
func (s *Store) CreateReservation(ctx context.Context, reservation domain.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(reservation.ID) == "" {
		return fmt.Errorf("reservation id is required")
	}
	if !reservation.Interval().IsValid() {
		return fmt.Errorf("reservation interval must have positive extent")
	}
	createdAt := reservation.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reservation.ID,
		reservation.ResourceID,
		reservation.AccountID,
		toMillis(reservation.StartAt),
		toMillis(reservation.EndAt),
		string(reservation.Status),
		reservation.Note,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetReservation returns one reservation by ID.
func (s *Store) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reservation{}, err
	}
	row := s.q.QueryRowContext(
		ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`,
		id,
	)
	reservation, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reservation{}, storage.ErrNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return reservation, nil
}

// SetReservationStatus updates one reservation's status.
func (s *Store) SetReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.q.ExecContext(
		ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`,
		string(status),
		id,
	)
	if err != nil {
		return fmt.Errorf("set reservation status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set reservation status: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListConfirmedOverlapping returns confirmed reservations on the resource
// whose half-open intervals overlap iv. The SQL comparison mirrors
// domain.Interval.Overlaps: existing.start < iv.end AND iv.start < existing.end.
func (s *Store) ListConfirmedOverlapping(ctx context.Context, resourceID string, iv domain.Interval) ([]domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(
		ctx,
		`SELECT `+reservationColumns+`
		   FROM reservations
		  WHERE resource_id = ?
		    AND status = ?
		    AND start_at < ?
		    AND ? < end_at
		  ORDER BY start_at ASC`,
		resourceID,
		string(domain.ReservationConfirmed),
		toMillis(iv.End),
		toMillis(iv.Start),
	)
	if err != nil {
		return nil, fmt.Errorf("list overlapping reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list overlapping reservations: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overlapping reservations: %w", err)
	}
	return reservations, nil
}

// ListAccountReservations returns one page of an account's reservations
// ordered by start time, then ID.
func (s *Store) ListAccountReservations(ctx context.Context, accountID string, opts storage.ListReservationsOptions) (storage.ReservationPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.ReservationPage{}, err
	}
	if opts.PageSize <= 0 {
		return storage.ReservationPage{}, fmt.Errorf("page size must be greater than zero")
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	afterStart, afterID, err := decodeReservationToken(opts.PageToken)
	if err != nil {
		return storage.ReservationPage{}, err
	}

	horizon := int64(0)
	if !opts.IncludePast {
		horizon = toMillis(now)
	}

	rows, err := s.q.QueryContext(
		ctx,
		`SELECT `+reservationColumns+`
		   FROM reservations
		  WHERE account_id = ?
		    AND end_at >= ?
		    AND (start_at > ? OR (start_at = ? AND id > ?))
		  ORDER BY start_at ASC, id ASC
		  LIMIT ?`,
		accountID,
		horizon,
		afterStart,
		afterStart,
		afterID,
		opts.PageSize+1,
	)
	if err != nil {
		return storage.ReservationPage{}, fmt.Errorf("list account reservations: %w", err)
	}
	defer rows.Close()

	page := storage.ReservationPage{
		Reservations: make([]domain.Reservation, 0, opts.PageSize),
	}
	for rows.Next() {
		reservation, err := scanReservation(rows.Scan)
		if err != nil {
			return storage.ReservationPage{}, fmt.Errorf("list account reservations: %w", err)
		}
		page.Reservations = append(page.Reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return storage.ReservationPage{}, fmt.Errorf("list account reservations: %w", err)
	}
	if len(page.Reservations) > opts.PageSize {
		last := page.Reservations[opts.PageSize-1]
		page.NextPageToken = encodeReservationToken(last)
		page.Reservations = page.Reservations[:opts.PageSize]
	}
	return page, nil
}

func scanReservation(scan func(dest ...any) error) (domain.Reservation, error) {
	var reservation domain.Reservation
	var startAt, endAt, createdAt int64
	var status string
	if err := scan(
		&reservation.ID,
		&reservation.ResourceID,
		&reservation.AccountID,
		&startAt,
		&endAt,
		&status,
		&reservation.Note,
		&createdAt,
	); err != nil {
		return domain.Reservation{}, err
	}
	reservation.StartAt = fromMillis(startAt)
	reservation.EndAt = fromMillis(endAt)
	reservation.Status = domain.ReservationStatus(status)
	reservation.CreatedAt = fromMillis(createdAt)
	return reservation, nil
}

func encodeReservationToken(reservation domain.Reservation) string {
	return strconv.FormatInt(toMillis(reservation.StartAt), 10) + ":" + reservation.ID
}

func decodeReservationToken(token string) (int64, string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return -1 << 62, "", nil
	}
	millisPart, id, found := strings.Cut(token, ":")
	if !found {
		return 0, "", fmt.Errorf("malformed page token")
	}
	millis, err := strconv.ParseInt(millisPart, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed page token")
	}
	return millis, id, nil
}
