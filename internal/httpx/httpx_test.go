package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eco3/internal/httpx"
	"eco3/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) httpx.ErrorBody {
	t.Helper()
	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrapTypedError(t *testing.T) {
	h := httpx.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return httpx.NotFound("POST_NOT_FOUND", "post not found")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeEnvelope(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "POST_NOT_FOUND", body.ErrorCode)
	assert.Equal(t, "post not found", body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestWrapUnknownErrorIsOpaque500(t *testing.T) {
	h := httpx.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("pq: connection refused")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.NotContains(t, body.Message, "pq:")
}

type fakeUsers struct {
	existing map[uint]bool
}

func (f fakeUsers) Exists(_ context.Context, id uint) (bool, error) {
	return f.existing[id], nil
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWT("test-secret")
	users := fakeUsers{existing: map[uint]bool{1: true}}
	mw := httpx.AuthMiddleware(tokens, users)

	var gotUser uint
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = httpx.UserFromCtx(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTH_REQUIRED", decodeEnvelope(t, w).ErrorCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeEnvelope(t, w).ErrorCode)
	})

	t.Run("deleted user", func(t *testing.T) {
		tok, err := tokens.Create(99)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		tok, err := tokens.Create(1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(1), gotUser)
	})
}
