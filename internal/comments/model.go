package comments

import (
	"time"

	"eco3/internal/posts"
	"eco3/internal/users"
)

type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint       `json:"post_id" gorm:"not null;index"`
	Post      posts.Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content   string     `json:"content" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at"`
}
