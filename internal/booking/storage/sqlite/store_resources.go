package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/storage"
)

// CreateResource inserts one resource record.
func (s *Store) CreateResource(ctx context.Context, resource domain.Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := strings.TrimSpace(resource.ID)
	if id == "" {
		return fmt.Errorf("resource id is required")
	}
	if strings.TrimSpace(resource.Name) == "" {
		return fmt.Errorf("resource name is required")
	}
	if resource.HourlyRate < 0 {
		return fmt.Errorf("hourly rate must not be negative")
	}
	if resource.CloseTime.MinutesOfDay() <= resource.OpenTime.MinutesOfDay() {
		return fmt.Errorf("close time must be after open time")
	}
	createdAt := resource.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO resources (id, name, kind, hourly_rate_cents, open_minutes, close_minutes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		resource.Name,
		string(resource.Kind),
		int64(resource.HourlyRate),
		resource.OpenTime.MinutesOfDay(),
		resource.CloseTime.MinutesOfDay(),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

// GetResource returns one resource by ID.
func (s *Store) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return domain.Resource{}, err
	}
	row := s.q.QueryRowContext(
		ctx,
		`SELECT id, name, kind, hourly_rate_cents, open_minutes, close_minutes, created_at
		   FROM resources
		  WHERE id = ?`,
		id,
	)
	var resource domain.Resource
	var kind string
	var rate int64
	var openMinutes, closeMinutes int
	var createdAt int64
	err := row.Scan(&resource.ID, &resource.Name, &kind, &rate, &openMinutes, &closeMinutes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Resource{}, storage.ErrNotFound
		}
		return domain.Resource{}, fmt.Errorf("get resource: %w", err)
	}
	resource.Kind = domain.ResourceKind(kind)
	resource.HourlyRate = domain.Cents(rate)
	resource.OpenTime = domain.ClockTimeFromMinutes(openMinutes)
	resource.CloseTime = domain.ClockTimeFromMinutes(closeMinutes)
	resource.CreatedAt = fromMillis(createdAt)
	return resource, nil
}
