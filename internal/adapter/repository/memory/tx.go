package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ttamm/gowallet/internal/domain"
)

type stagedAccount struct {
	balance   domain.Money
	version   int64
	updatedAt time.Time
}

// Tx stages writes against the Store. Nothing is visible to readers until
// Commit applies every staged write under the store's write lock; Rollback
// discards them. Either way the per-account locks taken by LoadForUpdate
// are released exactly once.
type Tx struct {
	store   *Store
	held    []*sync.Mutex
	staged  map[string]stagedAccount
	records []*domain.TransferRecord
	done    bool
}

func (t *Tx) lock(m *sync.Mutex) {
	m.Lock()
	t.held = append(t.held, m)
}

func (t *Tx) stage(id string, balance domain.Money, version int64, updatedAt time.Time) {
	t.staged[id] = stagedAccount{
		balance:   balance,
		version:   version,
		updatedAt: updatedAt,
	}
}

// Commit applies all staged writes atomically.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}

	t.store.mu.Lock()

	for id, staged := range t.staged {
		account := t.store.accounts[id]
		account.Balance = staged.balance
		account.Version = staged.version
		account.UpdatedAt = staged.updatedAt
	}

	t.store.records = append(t.store.records, t.records...)

	t.store.mu.Unlock()

	t.finish()

	return nil
}

// Rollback discards staged writes. Safe to call after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}

	t.finish()

	return nil
}

func (t *Tx) finish() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}

	t.held = nil
	t.staged = nil
	t.records = nil
	t.done = true
}
