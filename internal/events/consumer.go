package events

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Action weights for the leaderboard. Posting an action report counts
// more than liking someone else's.
const (
	postWeight = 5
	likeWeight = 1
)

// NewActivityHandler returns the fold applied to each consumed activity
// record: bump the actor's leaderboard score and the global impact
// counter, notify the post owner about likes, then publish both update
// events.
func NewActivityHandler(board Board, notifier Notifier) func(ctx context.Context, topic string, key, value []byte) error {
	return func(ctx context.Context, topic string, key, value []byte) error {
		var a Activity
		if err := json.Unmarshal(value, &a); err != nil {
			// malformed record, commit and move on
			return nil
		}

		var weight float64
		switch a.Kind {
		case ActivityPostCreated:
			weight = postWeight
		case ActivityLikeCreated:
			weight = likeWeight
		default:
			return nil
		}

		if err := board.AddScore(ctx, a.UserID, weight); err != nil {
			return err
		}
		total, err := board.AddImpact(ctx, int64(weight))
		if err != nil {
			return err
		}

		// best-effort: a failed notification must not re-fold the record
		if a.Kind == ActivityLikeCreated && notifier != nil && a.OwnerID != 0 && a.OwnerID != a.UserID {
			if err := notifier.Notify(ctx, a.OwnerID, "your post got a new like"); err != nil {
				log.Printf("events: notify owner %d: %v", a.OwnerID, err)
			}
		}

		now := time.Now().UTC()
		top, err := board.Top(ctx, 10)
		if err != nil {
			return err
		}
		if err := board.Publish(ctx, Event{
			Kind:        EventLeaderboardUpdated,
			At:          now,
			Leaderboard: top,
		}); err != nil {
			return err
		}
		return board.Publish(ctx, Event{
			Kind:        EventImpactUpdated,
			At:          now,
			ImpactTotal: total,
		})
	}
}
