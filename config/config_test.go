package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	os.Setenv("ENVIRONMENT", "local")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, uint64(5), conf.MinStake)
	assert.Equal(t, uint64(10), conf.RewardMultiplier)
	assert.Equal(t, uint64(100), conf.StartingBalance)
}

func TestNewReadsPolicyOverrides(t *testing.T) {
	os.Setenv("ENVIRONMENT", "local")
	os.Setenv("MIN_STAKE", "7")
	os.Setenv("MAX_STAKE", "250")
	defer os.Unsetenv("MIN_STAKE")
	defer os.Unsetenv("MAX_STAKE")

	conf := New()
	assert.Equal(t, uint64(7), conf.MinStake)
	assert.Equal(t, uint64(250), conf.MaxStake)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error it borked")
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
