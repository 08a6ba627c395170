package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "tenantportal-backend/internal/api/http"
	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/security"
)

const testJWTSecret = "handler-test-secret-0123456789abcdef"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func get(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/tenants/my-payments", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager(testJWTSecret, time.Hour)
	protected := httpapi.AuthMiddleware(tokens)(okHandler())

	t.Run("passes a valid token through with its claims", func(t *testing.T) {
		var claims *security.UserClaims
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims = httpapi.ClaimsFrom(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		token, err := tokens.GenerateAccessToken(7, "ada@example.com", domain.UserRoleTenant)
		require.NoError(t, err)

		rec := get(httpapi.AuthMiddleware(tokens)(inner), token)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, claims)
		assert.Equal(t, int32(7), claims.UserID)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		rec := get(protected, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		rec := get(protected, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := security.NewTokenManager("other-secret-key-0123456789abcdef", time.Hour)
		token, err := other.GenerateAccessToken(7, "ada@example.com", domain.UserRoleTenant)
		require.NoError(t, err)

		rec := get(protected, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	tokens := security.NewTokenManager(testJWTSecret, time.Hour)
	protected := httpapi.AuthMiddleware(tokens)(httpapi.RequireAdmin(okHandler()))

	t.Run("admits an admin token", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(1, "admin@example.com", domain.UserRoleAdmin)
		require.NoError(t, err)

		rec := get(protected, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids a tenant token", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(7, "ada@example.com", domain.UserRoleTenant)
		require.NoError(t, err)

		rec := get(protected, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
