package comments

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	List(ctx context.Context, p ListParams) ([]Comment, error)
	Update(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Comment, error) {
	var c Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, p ListParams) ([]Comment, error) {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	q := r.db.WithContext(ctx).Model(&Comment{})
	if p.PostID != 0 {
		q = q.Where("post_id = ?", p.PostID)
	}
	var out []Comment
	err := q.Order("created_at ASC").Limit(p.Limit).Offset(p.Offset).Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&Comment{}).Where("id = ?", id).
		Update("content", content).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Comment{}, id).Error
}
