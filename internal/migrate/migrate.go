package migrate

import (
	"eco3/internal/comments"
	"eco3/internal/likes"
	"eco3/internal/posts"
	"eco3/internal/users"

	"gorm.io/gorm"
)

// AutoMigrateAll applies the schema imperatively. Order matters so the
// cascading foreign keys can be created.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&posts.Post{},
		&comments.Comment{},
		&likes.Like{},
	)
}
