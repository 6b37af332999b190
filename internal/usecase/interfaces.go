package usecase

import (
	"context"
	"time"

	"github.com/ttamm/gowallet/internal/domain"
)

// AccountStore defines durable keyed storage of accounts.
type AccountStore interface {
	Create(ctx context.Context, account *domain.Account) error
	Load(ctx context.Context, id string) (*domain.Account, error)
	// LoadForUpdate reads an account inside tx while holding an exclusive
	// per-account lock until the transaction finishes.
	LoadForUpdate(ctx context.Context, tx Tx, id string) (*domain.Account, error)
	// ConditionalUpdate writes the balance only if the stored version still
	// equals expectedVersion, bumping the version on success. A mismatch
	// yields domain.ErrConflict and leaves storage untouched.
	ConditionalUpdate(ctx context.Context, tx Tx, id string, expectedVersion int64, balance domain.Money, updatedAt time.Time) error
	// List returns accounts ordered by id ascending.
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransferLog defines the append-only store of transfer records.
type TransferLog interface {
	Append(ctx context.Context, tx Tx, record *domain.TransferRecord) error
	// ListByAccount returns records where the account is either side,
	// newest first, truncated to limit.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.TransferRecord, error)
}

// Tx is one storage transaction: every write made through it becomes
// visible atomically on Commit, or not at all on Rollback.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager starts storage transactions.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage for the HTTP layer.
type IdempotencyStore interface {
	// CheckAndSet atomically claims the key if unseen.
	// Returns (seen, storedResponse, error).
	CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error)
	// Finish records the final response under an already claimed key.
	Finish(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
