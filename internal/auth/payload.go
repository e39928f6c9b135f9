package auth

import (
	"errors"
	"net/mail"

	"eco3/internal/users"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password_hash"`
}

func (p LoginRequest) Validate() error {
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type AuthResponse struct {
	User      *users.User `json:"user"`
	AuthToken string      `json:"auth_token"`
}
