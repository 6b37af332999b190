package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ttamm/gowallet/internal/domain"
	"github.com/ttamm/gowallet/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Balance:   a.Balance.Decimal(),
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}

	return result
}

// BalanceResponse is the GetBalance projection of an account.
type BalanceResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceFromDomain converts a domain account to a balance response.
func BalanceFromDomain(a *domain.Account) *BalanceResponse {
	return &BalanceResponse{
		ID:      a.ID,
		Name:    a.Name,
		Balance: a.Balance.Decimal(),
	}
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransferResponse represents a transfer record in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain record to a response.
func TransferFromDomain(t *domain.TransferRecord) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount.Decimal(),
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain records to responses.
func TransfersFromDomain(records []*domain.TransferRecord) []*TransferResponse {
	result := make([]*TransferResponse, len(records))
	for i, t := range records {
		result[i] = TransferFromDomain(t)
	}

	return result
}

// TransferResultResponse is a committed transfer plus both balances.
type TransferResultResponse struct {
	Transfer    *TransferResponse `json:"transfer"`
	FromBalance decimal.Decimal   `json:"from_balance"`
	ToBalance   decimal.Decimal   `json:"to_balance"`
}

// TransferResultFromUseCase converts a transfer result to a response.
func TransferResultFromUseCase(r *usecase.TransferResult) *TransferResultResponse {
	return &TransferResultResponse{
		Transfer:    TransferFromDomain(r.Record),
		FromBalance: r.FromBalance.Decimal(),
		ToBalance:   r.ToBalance.Decimal(),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
