package posts

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
	list, err := h.service.List(r.Context(), ParseListParams(r.URL.Query()))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"posts": list}, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("POST_NOT_FOUND", "post not found")
		}
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	var payload CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	p, err := h.service.Create(r.Context(), uid, payload)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return httpx.NotFound("USER_NOT_FOUND", "owner not found")
		}
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	var payload UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	p, err := h.service.Update(r.Context(), id, uid, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return httpx.NotFound("POST_NOT_FOUND", "post not found")
		case errors.Is(err, ErrNotOwner):
			return httpx.Forbidden("cannot modify another user's post")
		}
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	if err := h.service.Delete(r.Context(), id, uid); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return httpx.NotFound("POST_NOT_FOUND", "post not found")
		case errors.Is(err, ErrNotOwner):
			return httpx.Forbidden("cannot delete another user's post")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "post deleted"}, http.StatusOK)
	return nil
}

func pathID(r *http.Request) (uint, error) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, httpx.BadRequest("VALIDATION_ERROR", "invalid post id")
	}
	return uint(id64), nil
}
