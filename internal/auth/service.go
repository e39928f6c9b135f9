package auth

import (
	"context"
	"errors"

	"eco3/internal/users"
	"eco3/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Register(ctx context.Context, payload users.CreateUserRequest) (*users.User, string, error)
	Login(ctx context.Context, email, password string) (*users.User, string, error)
}

type service struct {
	users  users.Service
	tokens *jwt.JWT
}

func NewService(us users.Service, tokens *jwt.JWT) Service {
	return &service{users: us, tokens: tokens}
}

func (s *service) Register(ctx context.Context, payload users.CreateUserRequest) (*users.User, string, error) {
	u, err := s.users.Create(ctx, payload)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Create(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*users.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Create(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
