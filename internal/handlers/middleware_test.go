package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/checkfox/go_sales/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware_DisabledPassesThrough(t *testing.T) {
	cfg := &config.Config{}
	middleware := NewAuthMiddleware(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/sales-view", nil)
	recorder := httptest.NewRecorder()

	middleware.Authenticate(okHandler)(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Enabled = true
	cfg.Auth.SharedSecret = "secret"
	middleware := NewAuthMiddleware(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/sales-view", nil)
	recorder := httptest.NewRecorder()

	middleware.Authenticate(okHandler)(recorder, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Correlation-ID"))
}

func TestAuthMiddleware_InvalidSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Enabled = true
	cfg.Auth.SharedSecret = "secret"
	middleware := NewAuthMiddleware(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/sales-view", nil)
	req.Header.Set("X-Shared-Secret", "wrong")
	recorder := httptest.NewRecorder()

	middleware.Authenticate(okHandler)(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_ValidSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Enabled = true
	cfg.Auth.SharedSecret = "secret"
	middleware := NewAuthMiddleware(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/sales-view", nil)
	req.Header.Set("X-Shared-Secret", "secret")
	recorder := httptest.NewRecorder()

	middleware.Authenticate(okHandler)(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRecoveryMiddleware_RecoversPanic(t *testing.T) {
	middleware := NewRecoveryMiddleware()

	panicking := func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leads/sales-view", nil)
	recorder := httptest.NewRecorder()

	require.NotPanics(t, func() {
		middleware.Recover(panicking)(recorder, req)
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRecoveryMiddleware_PassesThrough(t *testing.T) {
	middleware := NewRecoveryMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/api/leads/sales-view", nil)
	recorder := httptest.NewRecorder()

	middleware.Recover(okHandler)(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
