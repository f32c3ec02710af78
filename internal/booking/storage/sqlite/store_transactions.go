package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/storage"
)

// CreateTransaction inserts one immutable ledger transaction record.
func (s *Store) CreateTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.ID) == "" {
		return fmt.Errorf("transaction id is required")
	}
	if strings.TrimSpace(tx.AccountID) == "" {
		return fmt.Errorf("transaction account id is required")
	}
	createdAt := tx.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO transactions (id, account_id, amount_cents, reservation_id, purchase_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID,
		tx.AccountID,
		int64(tx.Amount),
		tx.ReservationID,
		tx.PurchaseID,
		string(tx.Status),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListAccountTransactions returns an account's ledger records, newest first.
func (s *Store) ListAccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(
		ctx,
		`SELECT id, account_id, amount_cents, reservation_id, purchase_id, status, created_at
		   FROM transactions
		  WHERE account_id = ?
		  ORDER BY created_at DESC, id DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var amount, createdAt int64
		var status string
		if err := rows.Scan(&tx.ID, &tx.AccountID, &amount, &tx.ReservationID, &tx.PurchaseID, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("list account transactions: %w", err)
		}
		tx.Amount = domain.Cents(amount)
		tx.Status = domain.TransactionStatus(status)
		tx.CreatedAt = fromMillis(createdAt)
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}
	return transactions, nil
}
