package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"eco3/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	params := ParseListParams(r.URL.Query())
	list, err := h.service.List(r.Context(), params)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"users": list}, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("USER_NOT_FOUND", "user not found")
		}
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var payload CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	u, err := h.service.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return httpx.BadRequest("USER_ALREADY_EXISTS", "username or email already in use")
		}
		return err
	}
	httpx.WriteJSON(w, u, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	if uid != id {
		return httpx.Forbidden("cannot modify another user")
	}

	var payload UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	u, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return httpx.NotFound("USER_NOT_FOUND", "user not found")
		case errors.Is(err, ErrAlreadyExists):
			return httpx.BadRequest("USER_ALREADY_EXISTS", "username or email already in use")
		}
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	if uid != id {
		return httpx.Forbidden("cannot delete another user")
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("USER_NOT_FOUND", "user not found")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "user deleted"}, http.StatusOK)
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	id64, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id64 == 0 {
		return 0, httpx.BadRequest("VALIDATION_ERROR", "invalid id")
	}
	return uint(id64), nil
}
