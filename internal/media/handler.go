package media

import (
	"errors"
	"fmt"
	"net/http"

	"eco3/internal/httpx"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Upload stores an image and returns the key plus the API path the SPA
// can put into profile_image_url / image_url fields.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.UserFromCtx(r); err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		return httpx.BadRequest("VALIDATION_ERROR", "missing file field")
	}
	defer file.Close()

	key, err := h.service.Upload(r.Context(), file, header)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			return httpx.BadRequest("VALIDATION_ERROR", "unsupported content type")
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{
		"key": key,
		"url": fmt.Sprintf("/api/media/%s", key),
	}, http.StatusCreated)
	return nil
}

func (h *Handler) RedirectToSignedGet(w http.ResponseWriter, r *http.Request) error {
	key := r.PathValue("key")
	if key == "" {
		return httpx.BadRequest("VALIDATION_ERROR", "missing media key")
	}
	u, err := h.service.SignedURL(r.Context(), key)
	if err != nil {
		return err
	}
	http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.UserFromCtx(r); err != nil {
		return httpx.Unauthorized("AUTH_REQUIRED", "authentication required")
	}
	key := r.PathValue("key")
	if key == "" {
		return httpx.BadRequest("VALIDATION_ERROR", "missing media key")
	}
	if err := h.service.Delete(r.Context(), key); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "media deleted"}, http.StatusOK)
	return nil
}
