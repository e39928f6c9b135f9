package likes

import (
	"time"

	"eco3/internal/posts"
	"eco3/internal/users"
)

// Like has a composite primary key: at most one row per (user, post).
type Like struct {
	UserID    uint       `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint       `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	Post      posts.Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
}
