package redis

import (
	"context"
	"errors"
	"time"

	"shopsmart/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

// CacheRepository is the ephemeral cache capability: get, set with TTL, and
// prefix delete. Every redis failure is logged and swallowed here, so callers
// only ever observe a miss and fall back to the canonical store.
type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

// Get returns the raw payload at key. Missing key, connectivity failure and
// corrupt reads all come back as (nil, false).
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, bool) {
	if r.client == nil {
		return nil, false
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	return val, true
}

func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if r.client == nil {
		return
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// DeletePrefix removes every key under the prefix and returns how many went
// away. SCAN keeps the server responsive where KEYS would block it.
func (r *CacheRepository) DeletePrefix(ctx context.Context, prefix string) int {
	if r.client == nil {
		return 0
	}

	var deleted int

	keys := make([]string, 0, scanBatchSize)
	iter := r.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatchSize {
			deleted += r.deleteKeys(ctx, keys)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache scan failed", "prefix", prefix, "error", err)
	}
	if len(keys) > 0 {
		deleted += r.deleteKeys(ctx, keys)
	}

	return deleted
}

func (r *CacheRepository) deleteKeys(ctx context.Context, keys []string) int {
	n, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		logger.Warn("cache delete failed", "error", err)
		return 0
	}

	return int(n)
}
