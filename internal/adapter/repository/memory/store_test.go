package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttamm/gowallet/internal/adapter/repository/memory"
	"github.com/ttamm/gowallet/internal/domain"
)

func seedAccount(t *testing.T, store *memory.Store, id string, balance domain.Money) *domain.Account {
	t.Helper()

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        id,
		Name:      "account-" + id,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, store.Create(context.Background(), account))

	return account
}

func TestStore_CreateAndLoad(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seedAccount(t, store, "a1", 100)

	loaded, err := store.Load(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100), loaded.Balance)

	// Loads return snapshots, not the stored struct.
	loaded.Balance = 0
	again, err := store.Load(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100), again.Balance)

	err = store.Create(ctx, &domain.Account{ID: "a1"})
	assert.Error(t, err)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestStore_CommitAppliesStagedWrites(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seedAccount(t, store, "a1", 100)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	account, err := store.LoadForUpdate(ctx, tx, "a1")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, store.ConditionalUpdate(ctx, tx, "a1", account.Version, 40, now))

	// Staged state is invisible until commit.
	committed, err := store.Load(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100), committed.Balance)

	require.NoError(t, tx.Commit(ctx))

	committed, err = store.Load(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(40), committed.Balance)
	assert.Equal(t, account.Version+1, committed.Version)
}

func TestStore_RollbackDiscardsAndReleasesLocks(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seedAccount(t, store, "a1", 100)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	account, err := store.LoadForUpdate(ctx, tx, "a1")
	require.NoError(t, err)

	require.NoError(t, store.ConditionalUpdate(ctx, tx, "a1", account.Version, 40, time.Now().UTC()))
	require.NoError(t, tx.Rollback(ctx))

	committed, err := store.Load(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100), committed.Balance)
	assert.Equal(t, account.Version, committed.Version)

	// The lock must be free again; this would deadlock otherwise.
	tx2, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = store.LoadForUpdate(ctx, tx2, "a1")
	require.NoError(t, err)
	require.NoError(t, tx2.Rollback(ctx))
}

func TestStore_ConditionalUpdateVersionMismatch(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seedAccount(t, store, "a1", 100)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = store.ConditionalUpdate(ctx, tx, "a1", 7, 40, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = store.ConditionalUpdate(ctx, tx, "missing", 0, 40, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestStore_List(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for _, id := range []string{"c3", "a1", "b2"} {
		seedAccount(t, store, id, 10)
	}

	accounts, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "a1", accounts[0].ID)
	assert.Equal(t, "b2", accounts[1].ID)
	assert.Equal(t, "c3", accounts[2].ID)

	page, err := store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b2", page[0].ID)

	empty, err := store.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_TransferLog(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	appendRecord := func(id, from, to string, amount domain.Money) {
		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, tx, &domain.TransferRecord{
			ID:            id,
			FromAccountID: from,
			ToAccountID:   to,
			Amount:        amount,
			CreatedAt:     time.Now().UTC(),
		}))
		require.NoError(t, tx.Commit(ctx))
	}

	appendRecord("t1", "a1", "b2", 100)
	appendRecord("t2", "b2", "a1", 200)
	appendRecord("t3", "b2", "c3", 300)

	records, err := store.ListByAccount(ctx, "a1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first, both directions included.
	assert.Equal(t, "t2", records[0].ID)
	assert.Equal(t, "t1", records[1].ID)

	limited, err := store.ListByAccount(ctx, "a1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "t2", limited[0].ID)

	none, err := store.ListByAccount(ctx, "zz", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_AppendInvisibleUntilCommit(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, tx, &domain.TransferRecord{
		ID:            "t1",
		FromAccountID: "a1",
		ToAccountID:   "b2",
		Amount:        100,
		CreatedAt:     time.Now().UTC(),
	}))

	records, err := store.ListByAccount(ctx, "a1", 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, tx.Rollback(ctx))

	records, err = store.ListByAccount(ctx, "a1", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
