// Package ledger applies debits and credits to account balances and records
// immutable transaction entries.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evmartins/bookhold/internal/booking/audit"
	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/storage"
	apperrors "github.com/evmartins/bookhold/internal/platform/errors"
	"github.com/rs/zerolog"
)

// Debit charges amount against the account balance. It operates on whichever
// store view it is handed, so it works standalone and as one step of a larger
// unit of work.
func Debit(ctx context.Context, st storage.Store, accountID string, amount domain.Cents) (domain.Cents, error) {
	if amount < 0 {
		return 0, apperrors.New(apperrors.CodeInvalidAmount, "debit amount must not be negative")
	}
	balance, err := st.AdjustBalance(ctx, accountID, -amount)
	if err != nil {
		return 0, mapBalanceError(err, accountID, amount)
	}
	return balance, nil
}

// Credit adds amount to the account balance. Zero and negative amounts are
// rejected; a credit always moves money.
func Credit(ctx context.Context, st storage.Store, accountID string, amount domain.Cents) (domain.Cents, error) {
	if amount <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidAmount, "credit amount must be positive")
	}
	balance, err := st.AdjustBalance(ctx, accountID, amount)
	if err != nil {
		return 0, mapBalanceError(err, accountID, amount)
	}
	return balance, nil
}

func mapBalanceError(err error, accountID string, amount domain.Cents) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.WithMetadata(apperrors.CodeAccountNotFound, "account not found", map[string]string{
			"account_id": accountID,
		})
	case errors.Is(err, storage.ErrInsufficientFunds):
		return apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("balance below required %s", amount),
			map[string]string{
				"account_id": accountID,
				"required":   amount.String(),
			})
	default:
		return err
	}
}

// Ledger exposes standalone balance operations: top-ups and outright
// purchases that are not tied to a reservation.
type Ledger struct {
	store   storage.Store
	emitter *audit.Emitter
	log     zerolog.Logger
	clock   func() time.Time
}

// New creates a ledger over the given store.
func New(store storage.Store, emitter *audit.Emitter, log zerolog.Logger) *Ledger {
	return &Ledger{
		store:   store,
		emitter: emitter,
		log:     log,
		clock:   time.Now,
	}
}

// TopUp credits an account and records the completed transaction.
func (l *Ledger) TopUp(ctx context.Context, accountID string, amount domain.Cents) (domain.Transaction, error) {
	var record domain.Transaction
	err := l.store.InTx(ctx, func(st storage.Store) error {
		if _, err := Credit(ctx, st, accountID, amount); err != nil {
			return err
		}
		record = domain.Transaction{
			ID:        domain.NewID(),
			AccountID: accountID,
			Amount:    amount,
			Status:    domain.TransactionCompleted,
			CreatedAt: l.clock().UTC(),
		}
		return st.CreateTransaction(ctx, record)
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	l.emitter.Emit(ctx, audit.Event{
		ActorType:      "account",
		InputSummary:   fmt.Sprintf("top up %s", amount),
		DetectedAction: audit.ActionLedgerCredited,
		ActionDetails:  map[string]string{"amount": amount.String()},
		SubjectIDs:     []string{accountID, record.ID},
	})
	return record, nil
}

// Purchase debits an account for an outright purchase and records the
// completed transaction referencing the purchased item. The debit and the
// record commit or roll back together.
func (l *Ledger) Purchase(ctx context.Context, accountID, itemID string, amount domain.Cents) (domain.Transaction, error) {
	if amount <= 0 {
		return domain.Transaction{}, apperrors.New(apperrors.CodeInvalidAmount, "purchase amount must be positive")
	}
	var record domain.Transaction
	err := l.store.InTx(ctx, func(st storage.Store) error {
		if _, err := Debit(ctx, st, accountID, amount); err != nil {
			return err
		}
		record = domain.Transaction{
			ID:         domain.NewID(),
			AccountID:  accountID,
			Amount:     amount,
			PurchaseID: itemID,
			Status:     domain.TransactionCompleted,
			CreatedAt:  l.clock().UTC(),
		}
		return st.CreateTransaction(ctx, record)
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	l.emitter.Emit(ctx, audit.Event{
		ActorType:      "account",
		InputSummary:   fmt.Sprintf("purchase item %s for %s", itemID, amount),
		DetectedAction: audit.ActionPurchaseCompleted,
		ActionDetails: map[string]string{
			"amount":  amount.String(),
			"item_id": itemID,
		},
		SubjectIDs: []string{accountID, record.ID},
	})
	return record, nil
}

// Balance returns the account's current balance.
func (l *Ledger) Balance(ctx context.Context, accountID string) (domain.Cents, error) {
	account, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, apperrors.WithMetadata(apperrors.CodeAccountNotFound, "account not found", map[string]string{
				"account_id": accountID,
			})
		}
		return 0, err
	}
	return account.Balance, nil
}
