package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/ttamm/gowallet/internal/domain"
)

// TransferUseCase moves funds between accounts. A transfer debits one
// account, credits the other and appends one TransferRecord, all inside a
// single storage transaction, so either every effect commits or none does.
type TransferUseCase struct {
	txManager TxManager
	accounts  AccountStore
	log       TransferLog
	idGen     IDGenerator
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(txManager TxManager, accounts AccountStore, log TransferLog, idGen IDGenerator) *TransferUseCase {
	return &TransferUseCase{
		txManager: txManager,
		accounts:  accounts,
		log:       log,
		idGen:     idGen,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// TransferResult is the committed record plus both resulting balances.
type TransferResult struct {
	Record      *domain.TransferRecord
	FromBalance domain.Money
	ToBalance   domain.Money
}

// Transfer validates the request, then executes it with bounded retries on
// concurrency conflicts. Validation failures are returned before any
// storage access.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAccountID(input.FromAccountID); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}

	if err := domain.ValidateAccountID(input.ToAccountID); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	amount, err := domain.MoneyFromDecimal(input.Amount)
	if err != nil {
		return nil, err
	}

	// A positive sub-cent amount rounds to zero; re-check after rounding.
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount rounds to zero", domain.ErrInvalidAmount)
	}

	var result *TransferResult

	attempt := func() error {
		res, err := uc.execute(ctx, input.FromAccountID, input.ToAccountID, amount)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return err
			}

			return backoff.Permanent(err)
		}

		result = res

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval

	err = backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(b, maxTransferRetries), ctx))
	if err != nil {
		return nil, err
	}

	return result, nil
}

// execute runs one transfer attempt inside a storage transaction. Account
// locks are taken in ascending id order so two transfers touching the same
// accounts in opposite directions cannot deadlock.
func (uc *TransferUseCase) execute(ctx context.Context, fromID, toID string, amount domain.Money) (*TransferResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := []string{fromID, toID}
	sort.Strings(ids)

	locked := make(map[string]*domain.Account, len(ids))

	for _, id := range ids {
		account, err := uc.accounts.LoadForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				side := "sender"
				if id == toID {
					side = "recipient"
				}

				return nil, fmt.Errorf("%s %s: %w", side, id, domain.ErrAccountNotFound)
			}

			return nil, err
		}

		locked[id] = account
	}

	from := locked[fromID]
	to := locked[toID]

	if err := from.CanDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fromBalance := from.Balance - amount
	toBalance := to.Balance + amount

	if err := uc.accounts.ConditionalUpdate(ctx, tx, from.ID, from.Version, fromBalance, now); err != nil {
		return nil, err
	}

	if err := uc.accounts.ConditionalUpdate(ctx, tx, to.ID, to.Version, toBalance, now); err != nil {
		return nil, err
	}

	record := &domain.TransferRecord{
		ID:            uc.idGen.Generate(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        amount,
		CreatedAt:     now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.log.Append(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{
		Record:      record,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

// GetHistoryInput represents input for a history query.
type GetHistoryInput struct {
	AccountID string
	Limit     int
}

// GetHistory returns transfers touching the account, newest first.
func (uc *TransferUseCase) GetHistory(ctx context.Context, input GetHistoryInput) ([]*domain.TransferRecord, error) {
	if err := domain.ValidateAccountID(input.AccountID); err != nil {
		return nil, err
	}

	if _, err := uc.accounts.Load(ctx, input.AccountID); err != nil {
		return nil, err
	}

	return uc.log.ListByAccount(ctx, input.AccountID, domain.ClampLimit(input.Limit))
}
