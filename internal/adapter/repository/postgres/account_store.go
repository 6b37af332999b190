package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ttamm/gowallet/internal/domain"
	"github.com/ttamm/gowallet/internal/usecase"
)

// AccountStore implements usecase.AccountStore. Balances are stored as
// BIGINT cents; the schema additionally enforces balance >= 0.
type AccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates a new AccountStore.
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

const accountColumns = `id, name, balance, version, created_at, updated_at`

// Create inserts a new account.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Name, int64(account.Balance), account.Version,
		account.CreatedAt, account.UpdatedAt,
	)

	return err
}

// Load retrieves an account by ID.
func (s *AccountStore) Load(ctx context.Context, id string) (*domain.Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// LoadForUpdate retrieves an account inside tx with a FOR UPDATE row lock.
func (s *AccountStore) LoadForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	row := pgxTx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row)
}

// ConditionalUpdate writes the balance only if the stored version matches.
func (s *AccountStore) ConditionalUpdate(ctx context.Context, tx usecase.Tx, id string, expectedVersion int64, balance domain.Money, updatedAt time.Time) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx,
		`UPDATE accounts SET balance = $2, version = version + 1, updated_at = $3
		 WHERE id = $1 AND version = $4`,
		id, int64(balance), updatedAt, expectedVersion,
	)
	if err != nil {
		return translateConcurrencyErr(err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish an unknown account from a version mismatch.
		var exists bool
		if err := pgxTx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}

		if !exists {
			return domain.ErrAccountNotFound
		}

		return fmt.Errorf("account %s version changed: %w", id, domain.ErrConflict)
	}

	return nil
}

// List retrieves accounts ordered by id ascending.
func (s *AccountStore) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY id ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance int64
	)

	err := row.Scan(&account.ID, &account.Name, &balance, &account.Version,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Balance = domain.Money(balance)

	return &account, nil
}
