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
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// CreateAccount inserts one account record.
func (s *Store) CreateAccount(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := strings.TrimSpace(account.ID)
	if id == "" {
		return fmt.Errorf("account id is required")
	}
	if account.Balance < 0 {
		return fmt.Errorf("account balance must not be negative")
	}
	createdAt := account.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO accounts (id, name, balance_cents, created_at)
		 VALUES (?, ?, ?, ?)`,
		id,
		account.Name,
		int64(account.Balance),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccount returns one account by ID.
func (s *Store) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}
	row := s.q.QueryRowContext(
		ctx,
		`SELECT id, name, balance_cents, created_at FROM accounts WHERE id = ?`,
		id,
	)
	var account domain.Account
	var balance int64
	var createdAt int64
	if err := row.Scan(&account.ID, &account.Name, &balance, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, storage.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	account.Balance = domain.Cents(balance)
	account.CreatedAt = fromMillis(createdAt)
	return account, nil
}

// AdjustBalance applies a signed delta to an account balance. The update is
// conditional so a standalone debit is atomic even outside InTx.
func (s *Store) AdjustBalance(ctx context.Context, id string, delta domain.Cents) (domain.Cents, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	result, err := s.q.ExecContext(
		ctx,
		`UPDATE accounts
		    SET balance_cents = balance_cents + ?
		  WHERE id = ? AND balance_cents + ? >= 0`,
		int64(delta),
		id,
		int64(delta),
	)
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing account from an insufficient balance.
		if _, err := s.GetAccount(ctx, id); err != nil {
			return 0, err
		}
		return 0, storage.ErrInsufficientFunds
	}

	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
