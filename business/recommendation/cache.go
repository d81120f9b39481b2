package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"shopsmart/pkg/logger"
)

// Cache is the ephemeral key-value capability consumed by the orchestrator.
// Implementations swallow their own failures: Get reports any problem as a
// miss, Set and DeletePrefix are fire-and-forget.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string) int
}

// readThrough serves key from the cache when possible and otherwise runs
// compute and stores the result under key with the given TTL. A compute error
// propagates and caches nothing. An undecodable cached payload is treated as
// a miss, so cache trouble of any kind degrades to direct computation.
func readThrough[T any](ctx context.Context, cache Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if cache != nil {
		if raw, ok := cache.Get(ctx, key); ok {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				cacheLookups.WithLabelValues("hit").Inc()
				return cached, nil
			}
			logger.Warn("discarding undecodable cache entry", "key", key)
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	if cache != nil {
		if raw, err := json.Marshal(value); err == nil {
			cache.Set(ctx, key, raw, ttl)
		}
	}

	return value, nil
}

// recommendationKey derives the rec:* key from the request parameters. The
// per-user prefix "rec:{user}:" is what event ingestion deletes.
func recommendationKey(externalUserID string, k int, categoryID uint64) string {
	category := "all"
	if categoryID != 0 {
		category = strconv.FormatUint(categoryID, 10)
	}

	return fmt.Sprintf("rec:%s:%d:%s", externalUserID, k, category)
}

func similarityKey(productID uint64, k int) string {
	return fmt.Sprintf("sim:%d:%d", productID, k)
}
