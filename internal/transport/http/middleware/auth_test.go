package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-otp-login/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims must be injected for authorized requests")
		assert.Equal(t, wantUserID, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)

	Auth(signer)(protectedHandler(t, "")).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "missing or invalid authorization header", resp["message"])
}

func TestAuth_NonBearerScheme(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	Auth(signer)(protectedHandler(t, "")).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_GarbageToken(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")

	Auth(signer)(protectedHandler(t, "")).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "invalid or expired token", resp["message"])
}

func TestAuth_WrongSecret(t *testing.T) {
	verifier := token.NewSigner("secret-a", time.Hour)
	tok, err := token.NewSigner("secret-b", time.Hour).Sign("USER001", "a@x.com")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok)

	Auth(verifier)(protectedHandler(t, "")).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	tok, err := signer.Sign("USER001", "a@x.com")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok)

	Auth(signer)(protectedHandler(t, "USER001")).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
}
