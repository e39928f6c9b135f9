package redisx

import (
	"context"
	"log"
	"time"

	"eco3/configs"

	"github.com/redis/go-redis/v9"
)

func NewClient(cfg *configs.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis ping: %v", err)
	}
	return rdb
}
