package likes

import (
	"context"
	"errors"
	"log"
	"time"

	"eco3/internal/events"
	"eco3/internal/posts"
)

var (
	ErrNotFound      = errors.New("like not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrAlreadyExists = errors.New("like already exists")
)

type Service interface {
	Create(ctx context.Context, userID, postID uint) (*Like, error)
	Get(ctx context.Context, userID, postID uint) (*Like, error)
	ListByPost(ctx context.Context, postID uint) ([]Like, error)
	Delete(ctx context.Context, userID, postID uint) error
}

type service struct {
	repo      Repository
	posts     posts.Repository
	publisher events.Publisher
}

func NewService(repo Repository, pr posts.Repository, publisher events.Publisher) Service {
	return &service{repo: repo, posts: pr, publisher: publisher}
}

// Create pre-checks the duplicate explicitly so the client sees
// LIKE_ALREADY_EXISTS instead of a constraint violation.
func (s *service) Create(ctx context.Context, userID, postID uint) (*Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if exists, err := s.repo.Exists(ctx, userID, postID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrAlreadyExists
	}

	l := &Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishActivity(ctx, events.Activity{
		UserID:  userID,
		Kind:    events.ActivityLikeCreated,
		PostID:  postID,
		OwnerID: post.UserID,
		At:      l.CreatedAt,
	}); err != nil {
		log.Printf("likes: publish activity: %v", err)
	}
	return l, nil
}

func (s *service) Get(ctx context.Context, userID, postID uint) (*Like, error) {
	l, err := s.repo.Get(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *service) ListByPost(ctx context.Context, postID uint) ([]Like, error) {
	return s.repo.ListByPost(ctx, postID)
}

func (s *service) Delete(ctx context.Context, userID, postID uint) error {
	l, err := s.repo.Get(ctx, userID, postID)
	if err != nil {
		return err
	}
	if l == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, userID, postID)
}
