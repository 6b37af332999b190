package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidAccountName     = errors.New("invalid account name")
	ErrInvalidAccountID       = errors.New("invalid account id")
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")

	// Transfer errors
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrAmountTooLarge    = errors.New("amount exceeds maximum allowed")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict signals a concurrent-modification collision after
	// retries were exhausted. Unlike the other errors it is safe for the
	// caller to retry the whole operation.
	ErrConflict = errors.New("concurrent modification conflict")
)
