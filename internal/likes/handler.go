package likes

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	var payload struct {
		PostID uint `json:"post_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "malformed request body")
	}
	if payload.PostID == 0 {
		return httpx.BadRequest("VALIDATION_ERROR", "post_id is required")
	}
	l, err := h.service.Create(r.Context(), uid, payload.PostID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			return httpx.NotFound("POST_NOT_FOUND", "post not found")
		case errors.Is(err, ErrAlreadyExists):
			return httpx.BadRequest("LIKE_ALREADY_EXISTS", "post already liked")
		}
		return err
	}
	httpx.WriteJSON(w, l, http.StatusCreated)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	userID, postID, err := pathPair(r)
	if err != nil {
		return err
	}
	l, err := h.service.Get(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("LIKE_NOT_FOUND", "like not found")
		}
		return err
	}
	httpx.WriteJSON(w, l, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	postID64, err := strconv.ParseUint(r.URL.Query().Get("post_id"), 10, 64)
	if err != nil || postID64 == 0 {
		return httpx.BadRequest("VALIDATION_ERROR", "post_id is required")
	}
	list, err := h.service.ListByPost(r.Context(), uint(postID64))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"likes": list, "count": len(list)}, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	userID, postID, err := pathPair(r)
	if err != nil {
		return err
	}
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	if uid != userID {
		return httpx.Forbidden("cannot remove another user's like")
	}
	if err := h.service.Delete(r.Context(), userID, postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("LIKE_NOT_FOUND", "like not found")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "like removed"}, http.StatusOK)
	return nil
}

func pathPair(r *http.Request) (uint, uint, error) {
	uid64, err := strconv.ParseUint(r.PathValue("user_id"), 10, 64)
	if err != nil || uid64 == 0 {
		return 0, 0, httpx.BadRequest("VALIDATION_ERROR", "invalid user id")
	}
	pid64, err := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	if err != nil || pid64 == 0 {
		return 0, 0, httpx.BadRequest("VALIDATION_ERROR", "invalid post id")
	}
	return uint(uid64), uint(pid64), nil
}
