package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// User is the public user shape the API returns. The password
// credential is never present.
type User struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        *string   `json:"full_name"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

type AuthResponse struct {
	User      *User  `json:"user"`
	AuthToken string `json:"auth_token"`
}

type apiError struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// API is the thin HTTP client the store drives. One attempt per call,
// no retries.
type API struct {
	base string
	hc   *http.Client
}

func NewAPI(base string) *API {
	return &API{
		base: base,
		hc:   &http.Client{Timeout: defaultTimeout},
	}
}

func (a *API) do(ctx context.Context, method, path, token string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	} else {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequestWithContext(ctx, method, a.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e apiError
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Message != "" {
			return fmt.Errorf("%s (status %d)", e.Message, resp.StatusCode)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (a *API) Register(ctx context.Context, username, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":      username,
		"email":         email,
		"password_hash": password,
	}, &out)
	return out, err
}

func (a *API) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":         email,
		"password_hash": password,
	}, &out)
	return out, err
}

func (a *API) Verify(ctx context.Context, token string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}
