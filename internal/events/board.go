package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey = "eco3:leaderboard"
	impactKey      = "eco3:impact:total"
	channelName    = "eco3.events"
)

// Board holds the aggregated leaderboard and impact counters and fans
// events out to subscribers.
type Board interface {
	AddScore(ctx context.Context, userID uint, delta float64) error
	Top(ctx context.Context, n int64) ([]Entry, error)
	AddImpact(ctx context.Context, delta int64) (int64, error)
	Publish(ctx context.Context, ev Event) error
}

type redisBoard struct {
	rdb *redis.Client
}

func NewRedisBoard(rdb *redis.Client) Board {
	return &redisBoard{rdb: rdb}
}

func (b *redisBoard) AddScore(ctx context.Context, userID uint, delta float64) error {
	member := strconv.FormatUint(uint64(userID), 10)
	return b.rdb.ZIncrBy(ctx, leaderboardKey, delta, member).Err()
}

func (b *redisBoard) Top(ctx context.Context, n int64) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	zs, err := b.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, Entry{UserID: uint(id), Score: z.Score})
	}
	return out, nil
}

func (b *redisBoard) AddImpact(ctx context.Context, delta int64) (int64, error) {
	return b.rdb.IncrBy(ctx, impactKey, delta).Result()
}

func (b *redisBoard) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, channelName, payload).Err()
}
