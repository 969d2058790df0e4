package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-otp-login/internal/domain"
	"github.com/go-otp-login/internal/pkg/token"
	"github.com/go-otp-login/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(s *token.Signer, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(s)(h).ServeHTTP(w, r)
}

func TestMe_MissingClaims(t *testing.T) {
	h := NewMeHandler(&mockUserSvc{})
	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/v1/me", nil)) // called directly, no claims in context
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe_NoToken_RejectedByMiddleware(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	h := NewMeHandler(&mockUserSvc{})

	rr := httptest.NewRecorder()
	serveAuthed(signer, http.HandlerFunc(h.Get), rr, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe_ValidToken_ReturnsProfile(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	tok, err := signer.Sign("USER001", "a@x.com")
	require.NoError(t, err)

	svc := &mockUserSvc{}
	svc.On("Get", mock.Anything, "USER001").Return(sampleUser(), nil)
	h := NewMeHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	serveAuthed(signer, http.HandlerFunc(h.Get), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp UserEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Profile fetched successfully", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "USER001", resp.Data.UserID)
	svc.AssertExpectations(t)
}

func TestMe_TokenForDeletedUser(t *testing.T) {
	signer := token.NewSigner("test-secret", time.Hour)
	tok, err := signer.Sign("USER404", "gone@x.com")
	require.NoError(t, err)

	svc := &mockUserSvc{}
	svc.On("Get", mock.Anything, "USER404").
		Return(nil, domain.Errorf(domain.ErrNotFound, "User with ID USER404 not found"))
	h := NewMeHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	serveAuthed(signer, http.HandlerFunc(h.Get), rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
