package posts

import (
	"time"

	"eco3/internal/users"
)

type Post struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title     string     `json:"title" gorm:"size:200;not null"`
	Content   *string    `json:"content"`
	ImageURL  *string    `json:"image_url"`
	CreatedAt time.Time  `json:"created_at"`
}
