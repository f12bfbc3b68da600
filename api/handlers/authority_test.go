package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisprnet/whispr-api/api/handlers"
	"github.com/whisprnet/whispr-api/api/testhelpers"
	"github.com/whisprnet/whispr-api/models"
)

func TestAuthority_StatisticsHandler(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Authority{Ledger: ledger}
	id := submitReport(t, ledger, alice, 15)
	require.NoError(t, ledger.VerifyReport(context.Background(), officer, id, ""))

	req := newRequest(t, "GET", "/api/v1/authority/statistics", "", officer, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.StatisticsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var stats models.AuthorityStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, uint64(0), stats.ReportsPending)
	assert.Equal(t, uint64(1), stats.ReportsVerified)
	assert.Equal(t, uint64(150), stats.TotalRewardsDistributed)
}

func TestAuthority_StatisticsHandlerNotAuthority(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Authority{Ledger: ledger}

	req := newRequest(t, "GET", "/api/v1/authority/statistics", "", alice, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.StatisticsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAuthority_AddAuthorityHandler(t *testing.T) {
	ledger, store := testhelpers.NewLedger(officer)
	h := handlers.Authority{Ledger: ledger}

	req := newRequest(t, "POST", "/api/v1/authority", `{"id": "bob"}`, officer, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.AddAuthorityHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"added": true}`, rr.Body.String())
	assert.Contains(t, store.Authorities, bob)
}

func TestAuthority_AddAuthorityHandlerDuplicate(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Authority{Ledger: ledger}

	req := newRequest(t, "POST", "/api/v1/authority", `{"id": "officer"}`, officer, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.AddAuthorityHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAuthority_AddAuthorityHandlerAnonymous(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Authority{Ledger: ledger}

	req := newRequest(t, "POST", "/api/v1/authority", `{"id": "bob"}`, models.Anonymous, nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.AddAuthorityHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
