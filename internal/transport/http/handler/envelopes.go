package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-login/internal/application/login"
)

// MessageEnvelope is the generic response wrapper for plain messages and errors.
type MessageEnvelope struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// OTPEnvelope wraps get_otp responses.
type OTPEnvelope struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// LoginEnvelope wraps submit_otp responses.
type LoginEnvelope struct {
	Message     string          `json:"message"`
	Status      string          `json:"status"`
	UserData    *login.UserData `json:"user_data,omitempty"`
	AccessToken string          `json:"access_token,omitempty"`
}

// FailureEnvelope is the 500 response body. Detail carries the raw error text,
// a long-standing contract with existing clients.
type FailureEnvelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// UsersEnvelope wraps user list responses.
type UsersEnvelope struct {
	Data       []*UserPayload `json:"data"`
	Message    string         `json:"message"`
	TotalCount int            `json:"totalCount"`
}

// UserEnvelope wraps single-user responses.
type UserEnvelope struct {
	Data    *UserPayload `json:"data,omitempty"`
	Message string       `json:"message"`
	ID      string       `json:"id,omitempty"`
	Status  string       `json:"status,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

func writeFailure(w http.ResponseWriter, msg string, err error) {
	writeJSON(w, http.StatusInternalServerError, FailureEnvelope{
		Message: msg,
		Status:  "error",
		Detail:  err.Error(),
	})
}
