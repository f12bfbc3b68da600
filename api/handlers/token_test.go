package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whisprnet/whispr-api/api/handlers"
	"github.com/whisprnet/whispr-api/api/testhelpers"
	"github.com/whisprnet/whispr-api/models"
)

func TestToken_BalanceHandler(t *testing.T) {
	ledger, store := testhelpers.NewLedger(officer)
	h := handlers.Token{Ledger: ledger}
	store.Users[alice] = models.User{ID: alice, TokenBalance: 42}

	req := newRequest(t, "GET", "/api/v1/user/balance", "", alice, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.BalanceHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"balance": 42}`, rr.Body.String())
}

func TestToken_BalanceHandlerUnknownUser(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Token{Ledger: ledger}

	req := newRequest(t, "GET", "/api/v1/user/balance", "", bob, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.BalanceHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"balance": 0}`, rr.Body.String())
}

func TestToken_TransferHandler(t *testing.T) {
	ledger, store := testhelpers.NewLedger(officer)
	h := handlers.Token{Ledger: ledger}
	store.Users[alice] = models.User{ID: alice, TokenBalance: 50}

	req := newRequest(t, "POST", "/api/v1/tokens/transfer", `{"to": "bob", "amount": 20}`, alice, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.TransferHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"transferred": true}`, rr.Body.String())
	assert.Equal(t, uint64(30), store.Users[alice].TokenBalance)
	assert.Equal(t, uint64(20), store.Users[bob].TokenBalance)
}

func TestToken_TransferHandlerInsufficientBalance(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Token{Ledger: ledger}

	req := newRequest(t, "POST", "/api/v1/tokens/transfer", `{"to": "bob", "amount": 20}`, alice, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.TransferHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestToken_TransferHandlerAnonymous(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Token{Ledger: ledger}

	req := newRequest(t, "POST", "/api/v1/tokens/transfer", `{"to": "bob", "amount": 20}`, models.Anonymous, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.TransferHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
