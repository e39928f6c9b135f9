package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eco3/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAPIServer fakes the slice of the API the store talks to. A single
// bearer token is accepted; everything else is rejected the way the
// real server rejects it.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	const goodToken = "good-token"
	user := map[string]any{
		"id":         1,
		"username":   "alice",
		"email":      "a@x.com",
		"created_at": time.Now().UTC(),
	}
	authOK := map[string]any{"user": user, "auth_token": goodToken}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(authOK)
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password_hash"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "longpass1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false, "message": "invalid email or password", "error_code": "INVALID_CREDENTIALS",
			})
			return
		}
		json.NewEncoder(w).Encode(authOK)
	})
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false, "message": "invalid or expired token", "error_code": "INVALID_TOKEN",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user": user})
	})
	mux.HandleFunc("GET /api/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		<-r.Context().Done()
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newStore(t *testing.T, baseURL string) (*client.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	s := client.NewStore(baseURL, path)
	t.Cleanup(s.Close)
	return s, path
}

func TestLoginSuccessAndFailure(t *testing.T) {
	srv := newAPIServer(t)
	s, _ := newStore(t, srv.URL)

	require.NoError(t, s.Login(context.Background(), "a@x.com", "longpass1"))
	st := s.Snapshot()
	assert.True(t, st.Authenticated)
	assert.NotEmpty(t, st.Token)
	require.NotNil(t, st.User)
	assert.Equal(t, "alice", st.User.Username)
	assert.Empty(t, st.Error)

	err := s.Login(context.Background(), "a@x.com", "wrongpass1")
	require.Error(t, err)
	st = s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Equal(t, "login failed", st.Error)
}

func TestRegisterAuthenticatesImmediately(t *testing.T) {
	srv := newAPIServer(t)
	s, _ := newStore(t, srv.URL)

	require.NoError(t, s.Register(context.Background(), "alice", "a@x.com", "longpass1"))
	st := s.Snapshot()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newAPIServer(t)
	s, path := newStore(t, srv.URL)

	require.NoError(t, s.Login(context.Background(), "a@x.com", "longpass1"))
	s.Logout()

	st := s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)

	// the persisted file must no longer hold the token either
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "good-token")
}

func TestPersistenceRoundtrip(t *testing.T) {
	srv := newAPIServer(t)
	s, path := newStore(t, srv.URL)

	require.NoError(t, s.Login(context.Background(), "a@x.com", "longpass1"))
	s.SetPreferences(map[string]string{"theme": "dark", "units": "metric"})
	s.AddNotification("unsaved")
	s.Close()

	// a fresh store on the same file recovers token and preferences only
	s2 := client.NewStore(srv.URL, path)
	t.Cleanup(s2.Close)
	s2.CheckAuth(context.Background())

	st := s2.Snapshot()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "alice", st.User.Username)
	assert.Equal(t, "dark", st.Preferences["theme"])
	assert.Empty(t, st.Notifications)
}

func TestCheckAuthWithoutToken(t *testing.T) {
	srv := newAPIServer(t)
	s, _ := newStore(t, srv.URL)

	s.CheckAuth(context.Background())
	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated)
}

func TestCheckAuthRejectedTokenClears(t *testing.T) {
	srv := newAPIServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"stale-token","preferences":{}}`), 0o600))

	s := client.NewStore(srv.URL, path)
	t.Cleanup(s.Close)
	s.CheckAuth(context.Background())

	st := s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Empty(t, st.Token)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "stale-token")
}

func TestUnreadCountIsAFilter(t *testing.T) {
	srv := newAPIServer(t)
	s, _ := newStore(t, srv.URL)

	assert.Equal(t, 0, s.UnreadCount())

	first := s.AddNotification("bob liked your post")
	s.AddNotification("carla commented")
	assert.Equal(t, 2, s.UnreadCount())

	s.MarkNotificationRead(first.ID)
	assert.Equal(t, 1, s.UnreadCount())

	// marking twice changes nothing
	s.MarkNotificationRead(first.ID)
	assert.Equal(t, 1, s.UnreadCount())

	// unknown ids are a no-op
	s.MarkNotificationRead("missing")
	assert.Equal(t, 1, s.UnreadCount())

	// newest first
	st := s.Snapshot()
	require.Len(t, st.Notifications, 2)
	assert.Equal(t, "carla commented", st.Notifications[0].Message)
}

func TestSnapshotIsACopy(t *testing.T) {
	srv := newAPIServer(t)
	s, _ := newStore(t, srv.URL)

	s.SetPreferences(map[string]string{"theme": "dark"})
	st := s.Snapshot()
	st.Preferences["theme"] = "light"

	assert.Equal(t, "dark", s.Snapshot().Preferences["theme"])
}
