package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ttamm/gowallet/internal/domain"
	"github.com/ttamm/gowallet/internal/usecase"
)

// Store is an in-process implementation of the storage interfaces. It keeps
// committed state behind one RWMutex and hands out per-account mutexes so a
// transaction holds exclusive ownership of the accounts it touches until
// commit or rollback.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	records  []*domain.TransferRecord

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		locks:    make(map[string]*sync.Mutex),
	}
}

var (
	_ usecase.AccountStore = (*Store)(nil)
	_ usecase.TransferLog  = (*Store)(nil)
	_ usecase.TxManager    = (*Store)(nil)
)

// accountLock returns the mutex owning the given account id, creating it on
// first use. Locks are never removed; accounts cannot be deleted.
func (s *Store) accountLock(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	if _, ok := s.locks[id]; !ok {
		s.locks[id] = &sync.Mutex{}
	}

	return s.locks[id]
}

// Begin starts a staging transaction.
func (s *Store) Begin(ctx context.Context) (usecase.Tx, error) {
	return &Tx{
		store:  s,
		staged: make(map[string]stagedAccount),
	}, nil
}

// Create stores a new account.
func (s *Store) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return fmt.Errorf("account %s already exists", account.ID)
	}

	s.accounts[account.ID] = account.Clone()

	return nil
}

// Load returns a snapshot of the account.
func (s *Store) Load(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account.Clone(), nil
}

// LoadForUpdate acquires the account's lock for the transaction, then reads
// the committed state. The lock is held until the transaction finishes.
func (s *Store) LoadForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	mtx, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("memory: unexpected transaction type %T", tx)
	}

	// Missing accounts fail before locking; accounts are never deleted, so
	// existence cannot be invalidated afterwards.
	if _, err := s.Load(ctx, id); err != nil {
		return nil, err
	}

	mtx.lock(s.accountLock(id))

	return s.Load(ctx, id)
}

// ConditionalUpdate stages a balance write guarded by the version check.
func (s *Store) ConditionalUpdate(ctx context.Context, tx usecase.Tx, id string, expectedVersion int64, balance domain.Money, updatedAt time.Time) error {
	mtx, ok := tx.(*Tx)
	if !ok {
		return fmt.Errorf("memory: unexpected transaction type %T", tx)
	}

	s.mu.RLock()
	current, exists := s.accounts[id]
	s.mu.RUnlock()

	if !exists {
		return domain.ErrAccountNotFound
	}

	if current.Version != expectedVersion {
		return fmt.Errorf("account %s version %d, expected %d: %w", id, current.Version, expectedVersion, domain.ErrConflict)
	}

	mtx.stage(id, balance, expectedVersion+1, updatedAt)

	return nil
}

// List returns accounts ordered by id ascending.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	if offset >= len(ids) {
		return []*domain.Account{}, nil
	}

	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, s.accounts[id].Clone())
	}

	return accounts, nil
}

// Append stages a transfer record on the transaction.
func (s *Store) Append(ctx context.Context, tx usecase.Tx, record *domain.TransferRecord) error {
	mtx, ok := tx.(*Tx)
	if !ok {
		return fmt.Errorf("memory: unexpected transaction type %T", tx)
	}

	cp := *record
	mtx.records = append(mtx.records, &cp)

	return nil
}

// ListByAccount returns records touching the account, newest first.
func (s *Store) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TransferRecord

	// Records are committed in chronological order; walk backwards.
	for i := len(s.records) - 1; i >= 0 && len(result) < limit; i-- {
		r := s.records[i]
		if r.FromAccountID == accountID || r.ToAccountID == accountID {
			cp := *r
			result = append(result, &cp)
		}
	}

	return result, nil
}

// Ping reports storage health; the in-process store is always reachable.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}
