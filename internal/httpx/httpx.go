package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eco3/pkg/jwt"
)

type ctxKey string

const userKey ctxKey = "user_id"

var ErrNoUser = errors.New("no user in context")

// ErrorBody is the uniform error envelope every handler emits.
type ErrorBody struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	ErrorCode string    `json:"error_code,omitempty"`
}

// Error is a handler-boundary error carrying an HTTP status and an
// error code for the envelope.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func BadRequest(code, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: msg}
}

func NotFound(code, msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: msg}
}

func Unauthorized(code, msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: msg}
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, ErrorBody{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
		ErrorCode: code,
	}, status)
}

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap converts a HandlerFunc into an http.Handler. Errors of type
// *Error keep their status and code; anything else becomes a 500 with
// a non-descriptive message so internals never leak.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		var he *Error
		if errors.As(err, &he) {
			WriteError(w, he.Status, he.Message, he.Code)
			return
		}
		WriteError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	})
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserSource reports whether a user row still exists. The auth
// middleware rejects tokens whose subject has been deleted.
type UserSource interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

func AuthMiddleware(tokens *jwt.JWT, users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := BearerToken(r)
			if tok == "" {
				WriteError(w, http.StatusUnauthorized, "authentication required", "AUTH_REQUIRED")
				return
			}
			uid, err := tokens.Parse(tok)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "invalid or expired token", "INVALID_TOKEN")
				return
			}
			ok, err := users.Exists(r.Context(), uid)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
				return
			}
			if !ok {
				WriteError(w, http.StatusForbidden, "user no longer exists", "FORBIDDEN")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromCtx(r *http.Request) (uint, error) {
	uid, ok := r.Context().Value(userKey).(uint)
	if !ok || uid == 0 {
		return 0, ErrNoUser
	}
	return uid, nil
}

// WithUser is used by tests to seed an authenticated request context.
func WithUser(r *http.Request, id uint) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, id))
}
