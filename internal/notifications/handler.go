package notifications

import (
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
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	items, err := h.service.List(r.Context(), uid, limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"notifications": items}, http.StatusOK)
	return nil
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	id := r.PathValue("id")
	if id == "" {
		return httpx.BadRequest("VALIDATION_ERROR", "missing notification id")
	}
	if err := h.service.MarkRead(r.Context(), uid, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("NOTIFICATION_NOT_FOUND", "notification not found")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	return nil
}
