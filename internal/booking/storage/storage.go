// Package storage defines persistence contracts for the booking engine.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInsufficientFunds indicates a debit would take a balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ListReservationsOptions bounds a reservation listing.
type ListReservationsOptions struct {
	// IncludePast keeps reservations that ended before Now.
	IncludePast bool
	// Now anchors the past/upcoming split; zero means time.Now.
	Now time.Time
	// PageSize caps the number of returned rows.
	PageSize int
	// PageToken resumes a prior listing; empty starts from the beginning.
	PageToken string
}

// ReservationPage is one page of reservations ordered by start time.
type ReservationPage struct {
	Reservations  []domain.Reservation
	NextPageToken string
}

// AccountStore persists account balances.
type AccountStore interface {
	CreateAccount(ctx context.Context, account domain.Account) error
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	// AdjustBalance applies a signed delta to an account balance and returns
	// the updated balance. A negative delta that would take the balance below
	// zero fails with ErrInsufficientFunds and leaves the balance unchanged.
	AdjustBalance(ctx context.Context, id string, delta domain.Cents) (domain.Cents, error)
}

// ResourceStore reads reservable resources. Creation exists for seed tooling
// and tests; catalog ownership is external.
type ResourceStore interface {
	CreateResource(ctx context.Context, resource domain.Resource) error
	GetResource(ctx context.Context, id string) (domain.Resource, error)
}

// ReservationStore persists reservations.
type ReservationStore interface {
	CreateReservation(ctx context.Context, reservation domain.Reservation) error
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	// SetReservationStatus updates one reservation's status.
	SetReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	// ListConfirmedOverlapping returns confirmed reservations on the resource
	// whose half-open intervals overlap the given one.
	ListConfirmedOverlapping(ctx context.Context, resourceID string, iv domain.Interval) ([]domain.Reservation, error)
	// ListAccountReservations returns one page of an account's reservations
	// ordered by start time.
	ListAccountReservations(ctx context.Context, accountID string, opts ListReservationsOptions) (ReservationPage, error)
}

// TransactionStore persists immutable ledger transaction records.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx domain.Transaction) error
	ListAccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// Store aggregates every persistence contract plus the scoped unit of work.
type Store interface {
	AccountStore
	ResourceStore
	ReservationStore
	TransactionStore

	// InTx runs fn as one atomic unit of work: every store call made through
	// the Store passed to fn commits together or rolls back together,
	// including on panic and early error returns. Calls on an already
	// transactional Store join the enclosing unit.
	InTx(ctx context.Context, fn func(Store) error) error
}
