package client

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fixed action error strings. Failures are fail-fast and
// non-descriptive; the user re-triggers the action.
const (
	errLoginFailed    = "login failed"
	errRegisterFailed = "registration failed"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// State is a snapshot of the store. Only Token and Preferences survive
// a restart; everything else is session-local.
type State struct {
	User          *User
	Token         string
	Authenticated bool
	Loading       bool
	Error         string
	Preferences   map[string]string
	Notifications []Notification
}

type persisted struct {
	Token       string            `json:"token"`
	Preferences map[string]string `json:"preferences"`
}

// Store is the single source of truth for the client session. All
// mutation goes through its named actions; Snapshot returns copies, so
// callers cannot write state directly.
type Store struct {
	mu          sync.Mutex
	api         *API
	state       State
	persistPath string
	sub         *subscription
}

// NewStore loads the persisted token and preferences and opens the
// realtime event subscription. One subscription per store instance;
// Close tears it down.
func NewStore(baseURL, persistPath string) *Store {
	s := &Store{
		api:         NewAPI(baseURL),
		persistPath: persistPath,
		state: State{
			Loading:     true,
			Preferences: map[string]string{},
		},
	}
	s.load()
	s.sub = subscribe(baseURL)
	return s
}

func (s *Store) Close() {
	if s.sub != nil {
		s.sub.close()
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.Error = errLoginFailed
		s.state.Authenticated = false
		return err
	}
	s.commitAuth(resp)
	return nil
}

// Register authenticates immediately on success; there is no separate
// verification step.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	resp, err := s.api.Register(ctx, username, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.Error = errRegisterFailed
		s.state.Authenticated = false
		return err
	}
	s.commitAuth(resp)
	return nil
}

// Logout clears auth state locally. The token is not server-revoked,
// so no network call is made.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.Token = ""
	s.state.Authenticated = false
	s.state.Error = ""
	s.persist()
}

func (s *Store) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	token := s.state.Token
	s.mu.Unlock()

	if token == "" {
		s.mu.Lock()
		s.state.Loading = false
		s.state.Authenticated = false
		s.mu.Unlock()
		return
	}

	user, err := s.api.Verify(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.User = nil
		s.state.Token = ""
		s.state.Authenticated = false
		s.persist()
		return
	}
	s.state.User = user
	s.state.Authenticated = true
}

// SetPreferences is a pure local commit; the slice is persisted.
func (s *Store) SetPreferences(prefs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Preferences = map[string]string{}
	for k, v := range prefs {
		s.state.Preferences[k] = v
	}
	s.persist()
}

func (s *Store) AddNotification(message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notifications = append([]Notification{n}, s.state.Notifications...)
	return n
}

func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Notifications {
		if s.state.Notifications[i].ID == id {
			s.state.Notifications[i].Read = true
			return
		}
	}
}

// UnreadCount is always recomputed as a filter over the list, never
// tracked as a separate counter.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.state.Notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// commitAuth runs with the lock held.
func (s *Store) commitAuth(resp AuthResponse) {
	s.state.User = resp.User
	s.state.Token = resp.AuthToken
	s.state.Authenticated = true
	s.state.Error = ""
	s.persist()
}

func (s *Store) copyState() State {
	st := s.state
	st.Preferences = map[string]string{}
	for k, v := range s.state.Preferences {
		st.Preferences[k] = v
	}
	st.Notifications = append([]Notification(nil), s.state.Notifications...)
	if s.state.User != nil {
		u := *s.state.User
		st.User = &u
	}
	return st
}

func (s *Store) load() {
	if s.persistPath == "" {
		return
	}
	b, err := os.ReadFile(s.persistPath)
	if err != nil {
		return
	}
	var p persisted
	if json.Unmarshal(b, &p) != nil {
		return
	}
	s.state.Token = p.Token
	if p.Preferences != nil {
		s.state.Preferences = p.Preferences
	}
}

// persist runs with the lock held and mirrors only the token and
// preferences, matching what survives a page reload.
func (s *Store) persist() {
	if s.persistPath == "" {
		return
	}
	b, err := json.Marshal(persisted{
		Token:       s.state.Token,
		Preferences: s.state.Preferences,
	})
	if err != nil {
		return
	}
	_ = os.WriteFile(s.persistPath, b, 0o600)
}
