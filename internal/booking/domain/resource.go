package domain

import "time"

// ResourceKind classifies a reservable resource.
type ResourceKind string

const (
	ResourceKindRoom      ResourceKind = "room"
	ResourceKindSeat      ResourceKind = "seat"
	ResourceKindEquipment ResourceKind = "equipment"
)

// Resource is a finite reservable asset. Resource metadata is owned by an
// external catalog; the engine reads it to price reservations and to bound
// slot queries to operating hours.
type Resource struct {
	ID         string
	Name       string
	Kind       ResourceKind
	HourlyRate Cents
	OpenTime   ClockTime
	CloseTime  ClockTime
	CreatedAt  time.Time
}
