package events

import (
	"context"
	"time"
)

// Activity is the record posts and likes publish to the activity topic.
// UserID is the actor; OwnerID is the author of the post acted on.
type Activity struct {
	UserID  uint      `json:"user_id"`
	Kind    string    `json:"kind"`
	PostID  uint      `json:"post_id,omitempty"`
	OwnerID uint      `json:"owner_id,omitempty"`
	At      time.Time `json:"at"`
}

const (
	ActivityPostCreated = "post_created"
	ActivityLikeCreated = "like_created"
)

// Event is what the realtime channel delivers to connected clients.
type Event struct {
	Kind        string    `json:"kind"`
	At          time.Time `json:"at"`
	Leaderboard []Entry   `json:"leaderboard,omitempty"`
	ImpactTotal int64     `json:"impact_total,omitempty"`
}

const (
	EventLeaderboardUpdated = "leaderboard.updated"
	EventImpactUpdated      = "impact.updated"
)

type Entry struct {
	UserID uint    `json:"user_id"`
	Score  float64 `json:"score"`
}

type Publisher interface {
	PublishActivity(ctx context.Context, a Activity) error
}

// Notifier delivers a notification to a user. The consumer uses it to
// tell post owners about incoming likes.
type Notifier interface {
	Notify(ctx context.Context, userID uint, message string) error
}

type NotifierFunc func(ctx context.Context, userID uint, message string) error

func (f NotifierFunc) Notify(ctx context.Context, userID uint, message string) error {
	return f(ctx, userID, message)
}

// NopPublisher drops activity records. Used when kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishActivity(context.Context, Activity) error { return nil }
