package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-otp-login/internal/application/user"
	"github.com/go-otp-login/internal/domain"
	"github.com/go-otp-login/internal/pkg/dates"
	"github.com/go-otp-login/internal/pkg/validate"
)

// UserHandler handles user CRUD endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

// UserPayload is a user as rendered in API responses: timestamps formatted
// DD-MM-YYYY HH:MM:SS.
type UserPayload struct {
	UserID           string `json:"userId"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Age              *int   `json:"age,omitempty"`
	CreatedDate      string `json:"createdDate,omitempty"`
	LastModifiedDate string `json:"lastModifiedDate,omitempty"`
	LastLogin        string `json:"last_login,omitempty"`
}

func toPayload(u *domain.User) *UserPayload {
	return &UserPayload{
		UserID:           u.UserID,
		FullName:         u.FullName,
		Email:            u.Email,
		PhoneNumber:      u.PhoneNumber,
		Age:              u.Age,
		CreatedDate:      dates.Format(u.CreatedDate),
		LastModifiedDate: dates.Format(u.LastModifiedDate),
		LastLogin:        dates.FormatPtr(u.LastLogin),
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeFailure(w, "Failed to fetch users", err)
		return
	}
	payloads := make([]*UserPayload, len(users))
	for i := range users {
		payloads[i] = toPayload(&users[i])
	}
	writeJSON(w, http.StatusOK, UsersEnvelope{
		Data:       payloads,
		Message:    "Users fetched successfully",
		TotalCount: len(payloads),
	})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	u, err := h.svc.Get(r.Context(), userID)
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
		Message: fmt.Sprintf("%s fetched successfully", userID),
	})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, err := h.svc.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: err.Error(), Status: "failed"})
			return
		}
		writeFailure(w, "Failed to create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, UserEnvelope{
		Message: "User created successfully",
		ID:      u.UserID,
		Data:    toPayload(u),
	})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, err := h.svc.Update(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, err.Error())
			return
		}
		writeFailure(w, "Failed to update user", err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{
		Message: "User updated successfully",
		Data:    toPayload(u),
		Status:  "success",
	})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := h.svc.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, err.Error())
			return
		}
		writeFailure(w, "Failed to delete user", err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("%s deleted successfully", userID))
}
