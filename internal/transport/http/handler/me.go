package handler

import (
	"errors"
	"net/http"

	"github.com/go-otp-login/internal/application/user"
	"github.com/go-otp-login/internal/domain"
	"github.com/go-otp-login/internal/transport/http/middleware"
)

// MeHandler serves the profile of the authenticated user. It is the in-repo
// consumer of the access token: the route sits behind middleware.Auth, which
// verifies the token and injects its claims.
type MeHandler struct {
	svc user.Service
}

func NewMeHandler(svc user.Service) *MeHandler { return &MeHandler{svc: svc} }

func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, err.Error())
			return
		}
		writeFailure(w, "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{
		Data:    toPayload(u),
		Message: "Profile fetched successfully",
	})
}
