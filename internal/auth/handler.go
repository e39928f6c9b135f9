package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"eco3/internal/httpx"
	"eco3/internal/users"
)

type Handler struct {
	service Service
	users   users.Service
}

func NewHandler(service Service, us users.Service) *Handler {
	return &Handler{service: service, users: us}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	var payload users.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	u, token, err := h.service.Register(r.Context(), payload)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			return httpx.BadRequest("USER_ALREADY_EXISTS", "username or email already in use")
		}
		return err
	}
	httpx.WriteJSON(w, AuthResponse{User: u, AuthToken: token}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var payload LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	u, token, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return httpx.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
		}
		return err
	}
	httpx.WriteJSON(w, AuthResponse{User: u, AuthToken: token}, http.StatusOK)
	return nil
}

// Verify runs behind the auth middleware, so reaching it means the
// token was valid and its user still exists.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	u, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return httpx.Forbidden("user no longer exists")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]any{"user": u}, http.StatusOK)
	return nil
}
