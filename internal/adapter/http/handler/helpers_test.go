package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ttamm/gowallet/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domain.ErrAccountNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("sender x: %w", domain.ErrAccountNotFound), want: http.StatusNotFound},
		{err: domain.ErrInvalidAccountName, want: http.StatusBadRequest},
		{err: domain.ErrInvalidAccountID, want: http.StatusBadRequest},
		{err: domain.ErrNegativeInitialBalance, want: http.StatusBadRequest},
		{err: domain.ErrSameAccount, want: http.StatusBadRequest},
		{err: domain.ErrInvalidAmount, want: http.StatusBadRequest},
		{err: domain.ErrAmountTooLarge, want: http.StatusBadRequest},
		{err: domain.ErrInsufficientFunds, want: http.StatusUnprocessableEntity},
		{err: domain.ErrConflict, want: http.StatusConflict},
		{err: fmt.Errorf("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{query: "limit=10", want: 10},
		{query: "", want: 5},
		{query: "limit=abc", want: 5},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		if got := parseIntQuery(r, "limit", 5); got != tt.want {
			t.Errorf("parseIntQuery(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
