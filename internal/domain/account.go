package domain

import (
	"time"
)

// Account is a named holder of a non-negative balance. Version increments
// on every committed balance change and backs conditional updates.
type Account struct {
	ID        string
	Name      string
	Balance   Money
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDebit checks that debiting amount keeps the balance non-negative.
func (a *Account) CanDebit(amount Money) error {
	if a.Balance < amount {
		return ErrInsufficientFunds
	}

	return nil
}

// Clone returns a copy so callers cannot mutate stored state.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
