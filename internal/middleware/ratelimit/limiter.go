package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow counts one hit for key and reports whether it is within the
	// limit. When it is not, retryAfter is the time left in the window.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RedisLimiter is a fixed-window counter: one Redis key per (key, window).
type RedisLimiter struct {
	Client redis.Cmdable
	Limit  int
	Window time.Duration
	Prefix string

	now func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		Client: client,
		Limit:  limit,
		Window: window,
		Prefix: "ratelimit:cart",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	start := now.Truncate(l.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.Prefix, key, start.Unix())

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", redisKey, err)
	}

	if incr.Val() > int64(l.Limit) {
		return false, start.Add(l.Window).Sub(now), nil
	}
	return true, 0, nil
}
