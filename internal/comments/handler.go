package comments

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
	httpx.WriteJSON(w, map[string]any{"comments": list}, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("COMMENT_NOT_FOUND", "comment not found")
		}
		return err
	}
	httpx.WriteJSON(w, c, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	var payload CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	c, err := h.service.Create(r.Context(), uid, payload)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return httpx.NotFound("POST_NOT_FOUND", "post not found")
		}
		return err
	}
	httpx.WriteJSON(w, c, http.StatusCreated)
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
	var payload UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", err.Error())
	}
	c, err := h.service.Update(r.Context(), id, uid, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return httpx.NotFound("COMMENT_NOT_FOUND", "comment not found")
		case errors.Is(err, ErrNotOwner):
			return httpx.Forbidden("cannot modify another user's comment")
		}
		return err
	}
	httpx.WriteJSON(w, c, http.StatusOK)
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
			return httpx.NotFound("COMMENT_NOT_FOUND", "comment not found")
		case errors.Is(err, ErrNotOwner):
			return httpx.Forbidden("cannot delete another user's comment")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "comment deleted"}, http.StatusOK)
	return nil
}

func pathID(r *http.Request) (uint, error) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, httpx.BadRequest("VALIDATION_ERROR", "invalid comment id")
	}
	return uint(id64), nil
}
