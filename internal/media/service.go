package media

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"time"

	"eco3/internal/storage/s3"

	"github.com/google/uuid"
)

const presignTTL = 15 * time.Minute

var ErrUnsupportedType = errors.New("unsupported content type")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Service interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	SignedURL(ctx context.Context, key string) (*url.URL, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	store *s3.Storage
}

func NewService(store *s3.Storage) Service {
	return &service{store: store}
}

func (s *service) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		return "", ErrUnsupportedType
	}
	key := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(header.Filename))
	if err := s.store.Put(ctx, key, contentType, file, header.Size); err != nil {
		return "", err
	}
	return key, nil
}

func (s *service) SignedURL(ctx context.Context, key string) (*url.URL, error) {
	return s.store.PresignGet(ctx, key, presignTTL)
}

func (s *service) Delete(ctx context.Context, key string) error {
	return s.store.Remove(ctx, key)
}
