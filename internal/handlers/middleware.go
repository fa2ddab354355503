package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/checkfox/go_sales/internal/config"
	"github.com/checkfox/go_sales/internal/logger"
	"github.com/google/uuid"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// AuthMiddleware provides shared-secret authentication for the API endpoints
type AuthMiddleware struct {
	config *config.Config
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		config: cfg,
	}
}

// Authenticate validates the shared secret header if authentication is enabled
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.config.Auth.Enabled {
			next(w, r)
			return
		}

		correlationID := uuid.New().String()
		ctx := context.WithValue(r.Context(), logger.CorrelationIDKey, correlationID)

		providedSecret := r.Header.Get("X-Shared-Secret")
		if providedSecret == "" {
			logger.Warn(ctx, "Authentication failed: missing X-Shared-Secret header")
			respondError(w, correlationID, http.StatusUnauthorized, "missing authentication header")
			return
		}

		if providedSecret != m.config.Auth.SharedSecret {
			logger.Warn(ctx, "Authentication failed: invalid shared secret")
			respondError(w, correlationID, http.StatusUnauthorized, "invalid authentication credentials")
			return
		}

		next(w, r)
	}
}

// RecoveryMiddleware recovers from panics and returns 500 Internal Server Error
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new RecoveryMiddleware
func NewRecoveryMiddleware() *RecoveryMiddleware {
	return &RecoveryMiddleware{}
}

// Recover wraps a handler with panic recovery
func (m *RecoveryMiddleware) Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				correlationID := uuid.New().String()
				logger.Error(r.Context(), "Panic recovered",
					"panic", rec, "correlation_id", correlationID)
				respondError(w, correlationID, http.StatusInternalServerError, "internal server error")
			}
		}()

		next(w, r)
	}
}

// respondError sends a JSON error response with the correlation id attached
func respondError(w http.ResponseWriter, correlationID string, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)
	w.WriteHeader(status)

	response := ErrorResponse{
		Error:         message,
		CorrelationID: correlationID,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// writeJSON encodes a response body, logging encode failures
func writeJSON(w http.ResponseWriter, ctx context.Context, body interface{}) {
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.LogError(ctx, "Failed to encode response", err)
	}
}
