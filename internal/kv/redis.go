package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"skillexify/pkg/platform/sentinel"
)

const redisKeyPrefix = "skillexify:"

// Redis is a Store backed by a shared Redis instance. Batches commit through
// a MULTI/EXEC pipeline so all writes of an operation become visible together.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

func (r *Redis) Commit(ctx context.Context, writes []Write) error {
	pipe := r.client.TxPipeline()
	for _, w := range writes {
		pipe.Set(ctx, redisKeyPrefix+w.Key, w.Value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis commit: %w", err)
	}
	return nil
}
