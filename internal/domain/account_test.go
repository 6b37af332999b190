package domain

import (
	"errors"
	"testing"
)

func TestAccount_CanDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance Money
		amount  Money
		wantErr bool
	}{
		{name: "amount below balance", balance: 100, amount: 50},
		{name: "amount equals balance", balance: 100, amount: 100},
		{name: "amount above balance", balance: 100, amount: 101, wantErr: true},
		{name: "zero balance", balance: 0, amount: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &Account{Balance: tt.balance}

			err := account.CanDebit(tt.amount)

			if tt.wantErr && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_Clone(t *testing.T) {
	account := &Account{ID: "a", Balance: 100, Version: 2}

	cp := account.Clone()
	cp.Balance = 0

	if account.Balance != 100 {
		t.Error("mutating the clone changed the original")
	}
}
