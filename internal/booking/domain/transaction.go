package domain

import "time"

// TransactionStatus describes a ledger transaction record. The engine only
// produces completed records; they are immutable once written.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
)

// Transaction is one immutable ledger entry. Amount is signed; charges record
// the amount debited as a positive value. A record may reference the
// reservation or the purchased item it paid for.
type Transaction struct {
	ID            string
	AccountID     string
	Amount        Cents
	ReservationID string
	PurchaseID    string
	Status        TransactionStatus
	CreatedAt     time.Time
}
