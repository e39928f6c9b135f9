package posts

import (
	"context"
	"errors"
	"log"
	"time"

	"eco3/internal/events"
	"eco3/internal/users"
)

var (
	ErrNotFound      = errors.New("post not found")
	ErrOwnerNotFound = errors.New("owner not found")
	ErrNotOwner      = errors.New("not the post owner")
)

type Service interface {
	Create(ctx context.Context, userID uint, payload CreatePostRequest) (*Post, error)
	GetByID(ctx context.Context, id uint) (*Post, error)
	List(ctx context.Context, p ListParams) ([]Post, error)
	Update(ctx context.Context, id, actorID uint, payload UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id, actorID uint) error
}

type service struct {
	repo      Repository
	users     users.Repository
	publisher events.Publisher
}

func NewService(repo Repository, ur users.Repository, publisher events.Publisher) Service {
	return &service{repo: repo, users: ur, publisher: publisher}
}

func (s *service) Create(ctx context.Context, userID uint, payload CreatePostRequest) (*Post, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOwnerNotFound
	}

	p := &Post{
		UserID:    userID,
		Title:     payload.Title,
		Content:   payload.Content,
		ImageURL:  payload.ImageURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// best-effort; a dead broker must not fail the request
	if err := s.publisher.PublishActivity(ctx, events.Activity{
		UserID:  userID,
		Kind:    events.ActivityPostCreated,
		PostID:  p.ID,
		OwnerID: userID,
		At:      p.CreatedAt,
	}); err != nil {
		log.Printf("posts: publish activity: %v", err)
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, p ListParams) ([]Post, error) {
	return s.repo.List(ctx, p)
}

func (s *service) Update(ctx context.Context, id, actorID uint, payload UpdatePostRequest) (*Post, error) {
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

	updates := map[string]any{}
	payload.Title.Apply(updates, "title")
	payload.Content.Apply(updates, "content")
	payload.ImageURL.Apply(updates, "image_url")
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
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
