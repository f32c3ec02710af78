package domain

import "time"

// Account holds one registered account's prepaid balance. Accounts are
// created at registration by an external collaborator; the engine only
// mutates the balance through ledger debits and credits.
type Account struct {
	ID        string
	Name      string
	Balance   Cents
	CreatedAt time.Time
}
