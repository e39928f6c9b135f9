package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Service interface {
	Create(ctx context.Context, userID uint, message string) (Notification, error)
	List(ctx context.Context, userID uint, limit int64) ([]Notification, error)
	MarkRead(ctx context.Context, userID uint, notifID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uint, message string) (Notification, error) {
	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	return n, s.repo.Push(ctx, n)
}

func (s *service) List(ctx context.Context, userID uint, limit int64) ([]Notification, error) {
	return s.repo.List(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID uint, notifID string) error {
	found, err := s.repo.MarkRead(ctx, userID, notifID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
