package comments

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

type CreateCommentRequest struct {
	PostID  uint   `json:"post_id"`
	Content string `json:"content"`
}

func (p CreateCommentRequest) Validate() error {
	if p.PostID == 0 {
		return errors.New("post_id is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content must not be empty")
	}
	return nil
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (p UpdateCommentRequest) Validate() error {
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content must not be empty")
	}
	return nil
}

type ListParams struct {
	PostID uint
	Limit  int
	Offset int
}

func ParseListParams(q url.Values) ListParams {
	p := ListParams{Limit: 50}
	if n, err := strconv.ParseUint(q.Get("post_id"), 10, 64); err == nil {
		p.PostID = uint(n)
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		p.Limit = min(n, 200)
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}
