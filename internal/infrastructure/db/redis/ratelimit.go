package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rl:"

// FixedWindowLimiter counts requests per key in fixed windows shared by every
// process pointed at the same Redis.
// Key format: rl:<key>:<window_index>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewFixedWindowLimiter allows limit requests per key in each window. A window
// shorter than one second is rounded up to one second.
func NewFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &FixedWindowLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow increments the counter for key and reports whether it is still within
// the limit. The counter expires one second after its window closes.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.key(key)

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window+time.Second).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.limit, nil
}

// Window returns the length of a counting window.
func (l *FixedWindowLimiter) Window() time.Duration {
	return l.window
}

func (l *FixedWindowLimiter) key(key string) string {
	bucket := l.now().Unix() / int64(l.window/time.Second)
	return fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)
}
