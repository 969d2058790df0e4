package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-otp-login/internal/application/login"
	"github.com/go-otp-login/internal/domain"
	"github.com/go-otp-login/internal/pkg/dates"
	"github.com/go-otp-login/internal/pkg/validate"
)

// LoginHandler handles the OTP login flow endpoints.
type LoginHandler struct {
	svc login.Service
}

func NewLoginHandler(svc login.Service) *LoginHandler { return &LoginHandler{svc: svc} }

func (h *LoginHandler) GetOTP(w http.ResponseWriter, r *http.Request) {
	var req login.GetOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	issue, err := h.svc.RequestOTP(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, err.Error())
			return
		}
		writeFailure(w, "Failed to generate OTP", err)
		return
	}
	writeJSON(w, http.StatusOK, OTPEnvelope{
		Message:   fmt.Sprintf("Your OTP is: %s (last 6 digits of your phone number)", issue.Code),
		Status:    "success",
		ExpiresAt: dates.Format(issue.ExpiresAt),
	})
}

func (h *LoginHandler) SubmitOTP(w http.ResponseWriter, r *http.Request) {
	var req login.SubmitOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.SubmitOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrBadRequest):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			writeFailure(w, "Failed to submit OTP", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Message:     "Login successful",
		Status:      "success",
		UserData:    &result.UserData,
		AccessToken: result.AccessToken,
	})
}
