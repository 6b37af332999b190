package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ttamm/gowallet/internal/domain"
)

// AccountUseCase handles account creation and queries.
type AccountUseCase struct {
	accounts AccountStore
	idGen    IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accounts AccountStore, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accounts: accounts,
		idGen:    idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	InitialBalance decimal.Decimal
}

// CreateAccount validates the input and stores a new account. The initial
// balance is the only way funds enter the system.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	name, err := domain.ValidateAccountName(input.Name)
	if err != nil {
		return nil, err
	}

	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrNegativeInitialBalance
	}

	balance, err := domain.MoneyFromDecimal(input.InitialBalance)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Balance:   balance,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if err := domain.ValidateAccountID(id); err != nil {
		return nil, err
	}

	return uc.accounts.Load(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts ordered by id ascending.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	if input.Limit > domain.MaxListLimit {
		input.Limit = domain.MaxListLimit
	}

	if input.Offset < 0 {
		input.Offset = 0
	}

	return uc.accounts.List(ctx, input.Limit, input.Offset)
}
