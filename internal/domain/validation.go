package domain

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	MinAccountNameLength = 1
	MaxAccountNameLength = 100

	// DefaultHistoryLimit is applied when a caller does not bound a
	// history query; MaxListLimit caps any caller-supplied bound.
	DefaultHistoryLimit = 50
	MaxListLimit        = 1000
)

// ValidateAccountName trims the name and checks its length, returning
// the canonical (trimmed) form.
func ValidateAccountName(name string) (string, error) {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return "", fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return name, nil
}

// ValidateAccountID checks that id is a well-formed ULID.
func ValidateAccountID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAccountID, id)
	}

	return nil
}

// ClampLimit normalizes a caller-supplied result limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}

	if limit > MaxListLimit {
		return MaxListLimit
	}

	return limit
}
