package comments

import (
	"context"
	"errors"
	"time"

	"eco3/internal/posts"
)

var (
	ErrNotFound     = errors.New("comment not found")
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("not the comment owner")
)

type Service interface {
	Create(ctx context.Context, userID uint, payload CreateCommentRequest) (*Comment, error)
	GetByID(ctx context.Context, id uint) (*Comment, error)
	List(ctx context.Context, p ListParams) ([]Comment, error)
	Update(ctx context.Context, id, actorID uint, content string) (*Comment, error)
	Delete(ctx context.Context, id, actorID uint) error
}

type service struct {
	repo  Repository
	posts posts.Repository
}

func NewService(repo Repository, pr posts.Repository) Service {
	return &service{repo: repo, posts: pr}
}

func (s *service) Create(ctx context.Context, userID uint, payload CreateCommentRequest) (*Comment, error) {
	ok, err := s.posts.Exists(ctx, payload.PostID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPostNotFound
	}

	c := &Comment{
		UserID:    userID,
		PostID:    payload.PostID,
		Content:   payload.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *service) List(ctx context.Context, p ListParams) ([]Comment, error) {
	return s.repo.List(ctx, p)
}

func (s *service) Update(ctx context.Context, id, actorID uint, content string) (*Comment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.UserID != actorID {
		return nil, ErrNotOwner
	}
	if err := s.repo.Update(ctx, id, content); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, actorID uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.UserID != actorID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
