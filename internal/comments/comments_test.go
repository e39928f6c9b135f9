package comments_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"eco3/internal/comments"
	"eco3/internal/events"
	"eco3/internal/httpx"
	"eco3/internal/migrate"
	"eco3/internal/posts"
	"eco3/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	svc  comments.Service
	post *posts.Post
	user *users.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "eco3.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrateAll(db))

	ur := users.NewRepository(db)
	u := &users.User{Username: "alice", Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, ur.Create(context.Background(), u))

	pr := posts.NewRepository(db)
	ps := posts.NewService(pr, ur, events.NopPublisher{})
	p, err := ps.Create(context.Background(), u.ID, posts.CreatePostRequest{Title: "Compost bin build"})
	require.NoError(t, err)

	return &fixture{
		svc:  comments.NewService(comments.NewRepository(db), pr),
		post: p,
		user: u,
	}
}

func TestCreateAndListOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := f.svc.Create(ctx, f.user.ID, comments.CreateCommentRequest{
			PostID:  f.post.ID,
			Content: content,
		})
		require.NoError(t, err)
	}

	list, err := f.svc.List(ctx, comments.ListParams{PostID: f.post.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	// oldest first so threads read top-down
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "third", list[2].Content)
}

func TestCreateMissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.user.ID, comments.CreateCommentRequest{
		PostID:  999,
		Content: "into the void",
	})
	assert.ErrorIs(t, err, comments.ErrPostNotFound)
}

func TestUpdateNotOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.user.ID, comments.CreateCommentRequest{PostID: f.post.ID, Content: "mine"})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, c.ID, f.user.ID+1, "stolen")
	assert.ErrorIs(t, err, comments.ErrNotOwner)

	err = f.svc.Delete(ctx, c.ID, f.user.ID+1)
	assert.ErrorIs(t, err, comments.ErrNotOwner)
}

func TestHandlerMissingPost(t *testing.T) {
	f := newFixture(t)
	h := comments.NewHandler(f.svc)
	mux := http.NewServeMux()
	mux.Handle("POST /api/comments", httpx.Wrap(h.Create))

	req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewBufferString(`{"post_id":999,"content":"hi"}`))
	req = httpx.WithUser(req, f.user.ID)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "POST_NOT_FOUND")
}

func TestHandlerBlankContent(t *testing.T) {
	f := newFixture(t)
	h := comments.NewHandler(f.svc)
	mux := http.NewServeMux()
	mux.Handle("POST /api/comments", httpx.Wrap(h.Create))

	req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewBufferString(`{"post_id":1,"content":"   "}`))
	req = httpx.WithUser(req, f.user.ID)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
