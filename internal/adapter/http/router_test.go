package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/ttamm/gowallet/internal/adapter/http"
	"github.com/ttamm/gowallet/internal/adapter/http/dto"
	"github.com/ttamm/gowallet/internal/adapter/http/handler"
	"github.com/ttamm/gowallet/internal/adapter/repository/memory"
	"github.com/ttamm/gowallet/internal/infrastructure/id"
	"github.com/ttamm/gowallet/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	idGen := id.NewULIDGenerator()

	accountUC := usecase.NewAccountUseCase(store, idGen)
	transferUC := usecase.NewTransferUseCase(store, store, store, idGen)

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC),
		TransferHandler: handler.NewTransferHandler(transferUC),
		HealthHandler:   handler.NewHealthHandler(store),
		Logger:          zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)

	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createAccount(t *testing.T, srv *httptest.Server, name, balance string) *dto.AccountResponse {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/v1/accounts", map[string]string{
		"name":            name,
		"initial_balance": balance,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var account dto.AccountResponse
	decodeJSON(t, resp, &account)
	require.NotEmpty(t, account.ID)

	return &account
}

func TestCreateAccountEndpoint(t *testing.T) {
	srv := newTestServer(t)

	account := createAccount(t, srv, "alice", "100.50")
	assert.Equal(t, "alice", account.Name)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("100.50")))

	resp := postJSON(t, srv.URL+"/api/v1/accounts", map[string]string{
		"name":            "",
		"initial_balance": "10",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/accounts", map[string]string{
		"name":            "bob",
		"initial_balance": "-10",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetAccountEndpoint(t *testing.T) {
	srv := newTestServer(t)

	account := createAccount(t, srv, "alice", "75.25")

	resp, err := http.Get(srv.URL + "/api/v1/accounts/" + account.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var balance dto.BalanceResponse
	decodeJSON(t, resp, &balance)
	assert.Equal(t, account.ID, balance.ID)
	assert.Equal(t, "alice", balance.Name)
	assert.True(t, balance.Balance.Equal(decimal.RequireFromString("75.25")))

	resp, err = http.Get(srv.URL + "/api/v1/accounts/01AAAAAAAAAAAAAAAAAAAAAAAA")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/accounts/not-a-ulid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAccountsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	createAccount(t, srv, "alice", "10")
	createAccount(t, srv, "bob", "20")

	resp, err := http.Get(srv.URL + "/api/v1/accounts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list dto.ListAccountsResponse
	decodeJSON(t, resp, &list)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Accounts, 2)

	// ULIDs are time-ordered, so id order is creation order.
	assert.Equal(t, "alice", list.Accounts[0].Name)
	assert.Equal(t, "bob", list.Accounts[1].Name)
}

func TestTransferEndpoint(t *testing.T) {
	srv := newTestServer(t)

	alice := createAccount(t, srv, "alice", "100")
	bob := createAccount(t, srv, "bob", "50")

	resp := postJSON(t, srv.URL+"/api/v1/transfers", map[string]string{
		"from_account_id": alice.ID,
		"to_account_id":   bob.ID,
		"amount":          "50",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result dto.TransferResultResponse
	decodeJSON(t, resp, &result)
	assert.Equal(t, alice.ID, result.Transfer.FromAccountID)
	assert.Equal(t, bob.ID, result.Transfer.ToAccountID)
	assert.True(t, result.Transfer.Amount.Equal(decimal.RequireFromString("50")))
	assert.True(t, result.FromBalance.Equal(decimal.RequireFromString("50")))
	assert.True(t, result.ToBalance.Equal(decimal.RequireFromString("100")))
}

func TestTransferEndpoint_Errors(t *testing.T) {
	srv := newTestServer(t)

	alice := createAccount(t, srv, "alice", "30")
	bob := createAccount(t, srv, "bob", "50")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name: "insufficient funds",
			body: map[string]string{
				"from_account_id": alice.ID,
				"to_account_id":   bob.ID,
				"amount":          "50",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "same account",
			body: map[string]string{
				"from_account_id": alice.ID,
				"to_account_id":   alice.ID,
				"amount":          "10",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown recipient",
			body: map[string]string{
				"from_account_id": alice.ID,
				"to_account_id":   "01AAAAAAAAAAAAAAAAAAAAAAAA",
				"amount":          "10",
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "negative amount",
			body: map[string]string{
				"from_account_id": alice.ID,
				"to_account_id":   bob.ID,
				"amount":          "-10",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/v1/transfers", tt.body)
			resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	alice := createAccount(t, srv, "alice", "100")
	bob := createAccount(t, srv, "bob", "50")

	for _, amount := range []string{"10", "20"} {
		resp := postJSON(t, srv.URL+"/api/v1/transfers", map[string]string{
			"from_account_id": alice.ID,
			"to_account_id":   bob.ID,
			"amount":          amount,
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/v1/accounts/" + alice.ID + "/transfers")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []*dto.TransferResponse
	decodeJSON(t, resp, &records)
	require.Len(t, records, 2)

	// Newest first.
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("20")))
	assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("10")))

	resp, err = http.Get(srv.URL + "/api/v1/accounts/" + alice.ID + "/transfers?limit=1")
	require.NoError(t, err)
	decodeJSON(t, resp, &records)
	assert.Len(t, records, 1)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
