package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisprnet/whispr-api/api/handlers"
	"github.com/whisprnet/whispr-api/api/testhelpers"
	"github.com/whisprnet/whispr-api/config"
)

func newApp(t *testing.T) (*handlers.App, *testhelpers.MemStore) {
	t.Helper()
	ledger, store := testhelpers.NewLedger(officer)
	a := &handlers.App{
		Ledger: ledger,
		Config: config.Config{JWTSecret: "test-secret"},
	}
	a.Router = a.New()
	return a, store
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestApp_HealthCheck(t *testing.T) {
	a, _ := newApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"alive": true}`, rr.Body.String())
}

func TestApp_RoutedSubmitAndBalance(t *testing.T) {
	a, store := newApp(t)

	req := httptest.NewRequest("POST", "/api/v1/reports",
		strings.NewReader(`{"title": "Dumping at the river", "stakeAmount": 15}`))
	req.Header.Set("Authorization", bearer(t, "alice"))
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"reportId": 1}`, rr.Body.String())
	assert.Equal(t, uint64(85), store.Users[alice].TokenBalance)

	req = httptest.NewRequest("GET", "/api/v1/user/balance", nil)
	req.Header.Set("Authorization", bearer(t, "alice"))
	rr = httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"balance": 85}`, rr.Body.String())
}

func TestApp_RoutedRequestWithoutToken(t *testing.T) {
	a, _ := newApp(t)

	req := httptest.NewRequest("POST", "/api/v1/reports",
		strings.NewReader(`{"title": "Dumping at the river", "stakeAmount": 15}`))
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestApp_RoutedVerifyFlow(t *testing.T) {
	a, store := newApp(t)
	id := submitReport(t, a.Ledger, alice, 15)

	req := httptest.NewRequest("POST", "/api/v1/reports/1/verify",
		strings.NewReader(`{"notes": "confirmed"}`))
	req.Header.Set("Authorization", bearer(t, "officer"))
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(250), store.Users[alice].TokenBalance)
	assert.Equal(t, "confirmed", store.Reports[id].ReviewNotes)
}
