package jwt

import (
	"errors"
	"strconv"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type JWT struct {
	secret []byte
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

// Create signs an HS256 token carrying the user id in the "sub" claim.
func (j *JWT) Create(userID uint) (string, error) {
	now := time.Now()
	t := jw.NewWithClaims(jw.SigningMethodHS256, jw.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jw.NewNumericDate(now),
		ExpiresAt: jw.NewNumericDate(now.Add(tokenTTL)),
	})
	return t.SignedString(j.secret)
}

// Parse validates an HS256 token and returns the user id from "sub".
func (j *JWT) Parse(tok string) (uint, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) {
		if _, ok := t.Method.(*jw.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jw.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !t.Valid {
		return 0, ErrInvalidToken
	}
	sub, err := t.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
