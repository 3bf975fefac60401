package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter implements the request-rate gate with a per-key counter
// in Redis. Key format: ratelimit:<key>:<window_start_unix>. Counters expire
// one window after creation, so stale windows clean themselves up.
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter wraps client with a limit of requests per window.
func NewFixedWindowLimiter(client *redis.Client, limit int64, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow increments the caller's counter for the current window and reports
// whether it is still within the limit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key, time.Now())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	return incr.Val() <= l.limit, nil
}

func (l *FixedWindowLimiter) key(key string, now time.Time) string {
	windowStart := now.Unix() - now.Unix()%int64(l.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%d", key, windowStart)
}
