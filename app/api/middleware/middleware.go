package middleware

import (
	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/bcrypt"
	"backend/insurance-platform/app/pkg/redis"
)

type Middleware struct {
	ApiKeyAuthentication     ApiKeyAuthentication
	HeaderUserAuthentication HeaderUserAuthentication
	RateLimit                RateLimit
}

func NewMiddleware(res runtime.Resource) *Middleware {
	hasher := bcrypt.NewBcrypt(res.Config.BcryptConfig.Cost)

	var limiter redis.RateLimiter
	if res.Redis != nil && res.Redis.GetUniversalClient() != nil {
		limiter = redis.NewRedisRateLimiter(res.Redis, rateLimitKeyPrefix)
	}

	return &Middleware{
		ApiKeyAuthentication:     NewApiKeyAuthentication(res, &hasher),
		HeaderUserAuthentication: NewHeaderUserAuthentication(res),
		RateLimit:                NewRateLimit(res, limiter),
	}
}

// RequireUser resolves the portal user the request acts for.
func (m *Middleware) RequireUser() echo.MiddlewareFunc {
	return m.HeaderUserAuthentication.RequireAuth()
}

// RequireApiKey guards claim-management actions.
func (m *Middleware) RequireApiKey() echo.MiddlewareFunc {
	return m.ApiKeyAuthentication.RequireAuth()
}
