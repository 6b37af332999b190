package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ttamm/gowallet/internal/domain"
	"github.com/ttamm/gowallet/internal/usecase"
)

// TransferLog implements usecase.TransferLog. Rows are append-only; there
// are no UPDATE or DELETE paths.
type TransferLog struct {
	pool *pgxpool.Pool
}

// NewTransferLog creates a new TransferLog.
func NewTransferLog(pool *pgxpool.Pool) *TransferLog {
	return &TransferLog{pool: pool}
}

// Append inserts one record inside tx.
func (l *TransferLog) Append(ctx context.Context, tx usecase.Tx, record *domain.TransferRecord) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx,
		`INSERT INTO transfers (id, from_account_id, to_account_id, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.FromAccountID, record.ToAccountID,
		int64(record.Amount), record.CreatedAt,
	)

	return err
}

// ListByAccount retrieves records touching the account, newest first. The
// id tie-break keeps same-millisecond records in a stable order.
func (l *TransferLog) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.TransferRecord, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, from_account_id, to_account_id, amount, created_at
		 FROM transfers
		 WHERE from_account_id = $1 OR to_account_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.TransferRecord

	for rows.Next() {
		var (
			record domain.TransferRecord
			amount int64
		)

		err := rows.Scan(&record.ID, &record.FromAccountID, &record.ToAccountID,
			&amount, &record.CreatedAt)
		if err != nil {
			return nil, err
		}

		record.Amount = domain.Money(amount)
		records = append(records, &record)
	}

	return records, rows.Err()
}
