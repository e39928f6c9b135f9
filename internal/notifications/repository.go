package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Repository interface {
	Push(ctx context.Context, n Notification) error
	List(ctx context.Context, userID uint, limit int64) ([]Notification, error)
	MarkRead(ctx context.Context, userID uint, notifID string) (bool, error)
}

type redisRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepo{rdb: rdb, ttl: 30 * 24 * time.Hour}
}

func key(userID uint) string { return fmt.Sprintf("eco3:notif:%d", userID) }

// Push prepends to the user's list and refreshes the TTL in one
// round trip, so an active user's history never expires under them.
func (r *redisRepo) Push(ctx context.Context, n Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	k := key(n.UserID)
	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, k, b)
	pipe.Expire(ctx, k, r.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepo) List(ctx context.Context, userID uint, limit int64) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	vals, err := r.rdb.LRange(ctx, key(userID), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(vals))
	for _, v := range vals {
		var n Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			// entries from older builds that no longer decode are dropped
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkRead rewrites the stored entry in place so list order is kept.
func (r *redisRepo) MarkRead(ctx context.Context, userID uint, notifID string) (bool, error) {
	vals, err := r.rdb.LRange(ctx, key(userID), 0, -1).Result()
	if err != nil {
		return false, err
	}
	for i, v := range vals {
		var n Notification
		if json.Unmarshal([]byte(v), &n) != nil {
			continue
		}
		if n.ID != notifID {
			continue
		}
		n.Read = true
		b, _ := json.Marshal(n)
		if err := r.rdb.LSet(ctx, key(userID), int64(i), b).Err(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
