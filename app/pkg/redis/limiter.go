package redis

import (
	"context"

	"github.com/spartan-truongvi/redis_rate/v10"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// prefixedLimiter keeps limiter counters under their own key namespace.
type prefixedLimiter struct {
	limiter *redis_rate.Limiter
	prefix  string
}

func NewRedisRateLimiter(rds Redis, prefix string) RateLimiter {
	return &prefixedLimiter{
		limiter: redis_rate.NewLimiter(rds.GetUniversalClient()),
		prefix:  prefix,
	}
}

func (l *prefixedLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return l.limiter.Allow(ctx, l.prefix+key, limit)
}
