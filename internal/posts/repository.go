package posts

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uint) (*Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, p ListParams) ([]Post, error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Post, error) {
	var p Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repository) List(ctx context.Context, p ListParams) ([]Post, error) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	q := r.db.WithContext(ctx).Model(&Post{})
	if p.UserID != 0 {
		q = q.Where("user_id = ?", p.UserID)
	}
	var out []Post
	err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Post{}, id).Error
}
