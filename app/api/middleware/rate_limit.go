package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spartan-truongvi/redis_rate/v10"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/redis"
)

const rateLimitKeyPrefix = "rate_limit:"

type RateLimit struct {
	res     runtime.Resource
	limiter redis.RateLimiter
}

func NewRateLimit(res runtime.Resource, limiter redis.RateLimiter) RateLimit {
	return RateLimit{res: res, limiter: limiter}
}

// PerMinute limits each client IP to perMinute requests per minute on the
// routes it wraps. name separates the counters of different routes.
// Requests pass through when rate limiting is disabled or redis fails.
func (r RateLimit) PerMinute(name string, perMinute int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !r.res.Config.RateLimitConfig.Enabled || r.limiter == nil || perMinute <= 0 {
				return next(c)
			}

			key := name + ":" + c.RealIP()
			res, err := r.limiter.Allow(c.Request().Context(), key, redis_rate.PerMinute(perMinute))
			if err != nil {
				r.res.Logger.Warn("Rate limiter unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(perMinute))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if res.Allowed == 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
				return exception.NewError(nil, http.StatusTooManyRequests,
					int(exception.ErrorCodeCodeRateLimitExceeded), errMsgRateLimitExceed)
			}

			return next(c)
		}
	}
}
