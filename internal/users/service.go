package users

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("username or email already exists")
)

type Service interface {
	Create(ctx context.Context, payload CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, p ListParams) ([]User, error)
	Update(ctx context.Context, id uint, payload UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create checks uniqueness explicitly before inserting so duplicates
// surface as ErrAlreadyExists rather than a driver constraint error.
func (s *service) Create(ctx context.Context, payload CreateUserRequest) (*User, error) {
	if taken, err := s.repo.UsernameTaken(ctx, payload.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrAlreadyExists
	}
	if taken, err := s.repo.EmailTaken(ctx, payload.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		Username:        payload.Username,
		Email:           payload.Email,
		PasswordHash:    string(hash),
		FullName:        payload.FullName,
		ProfileImageURL: payload.ProfileImageURL,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) List(ctx context.Context, p ListParams) ([]User, error) {
	return s.repo.List(ctx, p)
}

func (s *service) Update(ctx context.Context, id uint, payload UpdateUserRequest) (*User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if payload.Username.Set && payload.Username.Value != existing.Username {
		if taken, err := s.repo.UsernameTaken(ctx, payload.Username.Value); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrAlreadyExists
		}
	}
	if payload.Email.Set && payload.Email.Value != existing.Email {
		if taken, err := s.repo.EmailTaken(ctx, payload.Email.Value); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrAlreadyExists
		}
	}

	updates := map[string]any{}
	payload.Username.Apply(updates, "username")
	payload.Email.Apply(updates, "email")
	payload.FullName.Apply(updates, "full_name")
	payload.ProfileImageURL.Apply(updates, "profile_image_url")
	if payload.Password.Set {
		hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password.Value), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
