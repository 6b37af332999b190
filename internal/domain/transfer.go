package domain

import (
	"time"
)

// TransferRecord is the immutable record of one completed transfer.
// It is appended exactly once, in the same atomic unit as the balance
// changes, and never updated or deleted.
type TransferRecord struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        Money
	CreatedAt     time.Time
}

// Validate checks the record invariants before it is persisted.
func (t *TransferRecord) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	return nil
}
