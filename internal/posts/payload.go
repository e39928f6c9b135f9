package posts

import (
	"errors"
	"net/url"
	"strconv"

	"eco3/pkg/patch"
)

type CreatePostRequest struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

func (p CreatePostRequest) Validate() error {
	if l := len(p.Title); l < 1 || l > 200 {
		return errors.New("title must be 1-200 characters")
	}
	return nil
}

type UpdatePostRequest struct {
	Title    patch.Field[string] `json:"title"`
	Content  patch.Field[string] `json:"content"`
	ImageURL patch.Field[string] `json:"image_url"`
}

func (p UpdatePostRequest) Validate() error {
	if p.Title.Set {
		if !p.Title.Valid {
			return errors.New("title cannot be null")
		}
		if l := len(p.Title.Value); l < 1 || l > 200 {
			return errors.New("title must be 1-200 characters")
		}
	}
	return nil
}

type ListParams struct {
	UserID uint
	Limit  int
	Offset int
}

func ParseListParams(q url.Values) ListParams {
	p := ListParams{Limit: 20}
	if n, err := strconv.ParseUint(q.Get("user_id"), 10, 64); err == nil {
		p.UserID = uint(n)
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		p.Limit = min(n, 100)
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}
