package echoutil

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/runtime"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
	validatorUtil "backend/insurance-platform/app/pkg/util/validator"
)

// SetupRequestContextMiddleware copies the id assigned by the RequestID
// middleware into the request context so managers can log it.
func SetupRequestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(ctxutil.SetRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}

// SetupCORSMiddleware accepts the configured origins, including "*.domain"
// wildcard rules.
func SetupCORSMiddleware(res runtime.Resource) echo.MiddlewareFunc {
	origins := strings.Split(res.Config.RouterConfig.AllowedOrigins, ",")
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return validatorUtil.IsOriginAllowed(origin, origins), nil
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderXRequestID,
			"X-User-ID",
			"X-API-Key",
		},
		AllowMethods:  []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		ExposeHeaders: []string{echo.HeaderXRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
	})
}

var quietPaths = map[string]bool{"/health": true, "/favicon.ico": true}

// SetupLoggerMiddleware writes one line per request. Client errors log at
// warn and server errors at error.
func SetupLoggerMiddleware(res runtime.Resource) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:  true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogRequestID: true,
		LogUserAgent: true,
		LogStatus:    true,
		LogError:     true,
		LogHeaders:   []string{"X-User-ID"},
		Skipper: func(c echo.Context) bool {
			return quietPaths[strings.ToLower(c.Request().URL.Path)]
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", v.RoutePath),
				zap.String("user_agent", v.UserAgent),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if ids := v.Headers["X-User-Id"]; len(ids) > 0 {
				fields = append(fields, zap.String("user_id", ids[0]))
			}

			switch {
			case v.Status >= http.StatusInternalServerError:
				res.Logger.Error("request failed", append(fields, zap.Error(v.Error))...)
			case v.Status >= http.StatusBadRequest:
				res.Logger.Warn("request rejected", append(fields, zap.Error(v.Error))...)
			default:
				res.Logger.Info("request", fields...)
			}
			return nil
		},
	})
}
