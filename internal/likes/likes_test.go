package likes_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"eco3/internal/events"
	"eco3/internal/httpx"
	"eco3/internal/likes"
	"eco3/internal/migrate"
	"eco3/internal/posts"
	"eco3/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturePublisher struct {
	activities []events.Activity
}

func (c *capturePublisher) PublishActivity(_ context.Context, a events.Activity) error {
	c.activities = append(c.activities, a)
	return nil
}

type fixture struct {
	svc       likes.Service
	posts     posts.Service
	user      *users.User
	post      *posts.Post
	publisher *capturePublisher
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
	p, err := ps.Create(context.Background(), u.ID, posts.CreatePostRequest{Title: "Meatless week"})
	require.NoError(t, err)

	pub := &capturePublisher{}
	return &fixture{
		svc:       likes.NewService(likes.NewRepository(db), pr, pub),
		posts:     ps,
		user:      u,
		post:      p,
		publisher: pub,
	}
}

func TestCreateOncePerUserPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l, err := f.svc.Create(ctx, f.user.ID, f.post.ID)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, l.UserID)
	assert.Equal(t, f.post.ID, l.PostID)

	_, err = f.svc.Create(ctx, f.user.ID, f.post.ID)
	assert.ErrorIs(t, err, likes.ErrAlreadyExists)

	list, err := f.svc.ListByPost(ctx, f.post.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.Len(t, f.publisher.activities, 1)
	activity := f.publisher.activities[0]
	assert.Equal(t, events.ActivityLikeCreated, activity.Kind)
	assert.Equal(t, f.post.ID, activity.PostID)
	// the consumer needs the post author to notify them
	assert.Equal(t, f.post.UserID, activity.OwnerID)
}

func TestCreateMissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.user.ID, 999)
	assert.ErrorIs(t, err, likes.ErrPostNotFound)
	assert.Empty(t, f.publisher.activities)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.user.ID, f.post.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.user.ID, f.post.ID))
	_, err = f.svc.Get(ctx, f.user.ID, f.post.ID)
	assert.ErrorIs(t, err, likes.ErrNotFound)

	err = f.svc.Delete(ctx, f.user.ID, f.post.ID)
	assert.ErrorIs(t, err, likes.ErrNotFound)
}

func TestPostDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.user.ID, f.post.ID)
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, f.post.ID, f.user.ID))

	_, err = f.svc.Get(ctx, f.user.ID, f.post.ID)
	assert.ErrorIs(t, err, likes.ErrNotFound)
}

func TestHandlerDuplicateAndOwnership(t *testing.T) {
	f := newFixture(t)
	h := likes.NewHandler(f.svc)
	mux := http.NewServeMux()
	mux.Handle("POST /api/likes", httpx.Wrap(h.Create))
	mux.Handle("DELETE /api/likes/{user_id}/{post_id}", httpx.Wrap(h.Delete))

	like := func(uid uint) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/likes", bytes.NewBufferString(`{"post_id":1}`))
		req = httpx.WithUser(req, uid)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, like(f.user.ID).Code)

	w := like(f.user.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "LIKE_ALREADY_EXISTS")

	// someone else cannot remove the like
	req := httpx.WithUser(httptest.NewRequest(http.MethodDelete, "/api/likes/1/1", nil), f.user.ID+1)
	dw := httptest.NewRecorder()
	mux.ServeHTTP(dw, req)
	assert.Equal(t, http.StatusForbidden, dw.Code)

	req = httpx.WithUser(httptest.NewRequest(http.MethodDelete, "/api/likes/1/1", nil), f.user.ID)
	dw = httptest.NewRecorder()
	mux.ServeHTTP(dw, req)
	assert.Equal(t, http.StatusOK, dw.Code)
}
