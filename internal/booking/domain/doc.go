// Package domain holds the core booking types: accounts, resources,
// reservations, ledger entries, and the time interval model they share.
package domain
