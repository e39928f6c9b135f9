package users

import (
	"errors"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"eco3/pkg/patch"
)

type CreateUserRequest struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Password        string  `json:"password_hash"`
	FullName        *string `json:"full_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

func (p CreateUserRequest) Validate() error {
	if l := len(p.Username); l < 1 || l > 50 {
		return errors.New("username must be 1-50 characters")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if len(p.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type UpdateUserRequest struct {
	Username        patch.Field[string] `json:"username"`
	Email           patch.Field[string] `json:"email"`
	Password        patch.Field[string] `json:"password_hash"`
	FullName        patch.Field[string] `json:"full_name"`
	ProfileImageURL patch.Field[string] `json:"profile_image_url"`
}

func (p UpdateUserRequest) Validate() error {
	if p.Username.Set {
		if !p.Username.Valid {
			return errors.New("username cannot be null")
		}
		if l := len(p.Username.Value); l < 1 || l > 50 {
			return errors.New("username must be 1-50 characters")
		}
	}
	if p.Email.Set {
		if !p.Email.Valid {
			return errors.New("email cannot be null")
		}
		if _, err := mail.ParseAddress(p.Email.Value); err != nil {
			return errors.New("email is not a valid address")
		}
	}
	if p.Password.Set {
		if !p.Password.Valid || len(p.Password.Value) < 8 {
			return errors.New("password must be at least 8 characters")
		}
	}
	return nil
}

type ListParams struct {
	Query     string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

var sortColumns = map[string]bool{
	"created_at": true,
	"username":   true,
	"email":      true,
}

// ParseListParams reads query/limit/offset/sort_by/sort_order with the
// defaults the SPA relies on. Unknown sort columns fall back to created_at.
func ParseListParams(q url.Values) ListParams {
	p := ListParams{
		Query:     strings.TrimSpace(q.Get("query")),
		Limit:     20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		p.Limit = min(n, 100)
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		p.Offset = n
	}
	if col := q.Get("sort_by"); sortColumns[col] {
		p.SortBy = col
	}
	if ord := strings.ToLower(q.Get("sort_order")); ord == "asc" {
		p.SortOrder = "asc"
	}
	return p
}
