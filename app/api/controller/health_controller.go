package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

const (
	healthUp   = "up"
	healthDown = "down"

	healthCheckTimeout = 2 * time.Second
)

type HealthController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewHealthController(managers *manager.Managers, res runtime.Resource) *HealthController {
	return &HealthController{
		res:      res,
		managers: managers,
	}
}

// HealthCheck godoc
//
//	@Summary		Verify health
//	@Description	Reports the service status together with its database and redis
//	@Tags			system
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	response.GeneralResponse[response.HealthResponse]
//	@Failure		503	{object}	response.GeneralResponse[response.HealthResponse]
//	@Router			/health [get]
func (c *HealthController) HealthCheck(ec echo.Context) error {
	ctx, cancel := context.WithTimeout(ec.Request().Context(), healthCheckTimeout)
	defer cancel()

	res := response.HealthResponse{
		Status:   healthUp,
		Database: c.pingDatabase(ctx),
		Redis:    c.pingRedis(ctx),
	}

	status := http.StatusOK
	if res.Database != healthUp || res.Redis != healthUp {
		res.Status = healthDown
		status = http.StatusServiceUnavailable
	}
	return ec.JSON(status, response.ToSuccessResponse(res))
}

func (c *HealthController) pingDatabase(ctx context.Context) string {
	if c.res.DB == nil {
		return healthDown
	}
	if err := c.res.DB.PrimaryConn().PingContext(ctx); err != nil {
		c.res.Logger.Warn("database health check failed", zap.Error(err))
		return healthDown
	}
	return healthUp
}

func (c *HealthController) pingRedis(ctx context.Context) string {
	if c.res.Redis == nil || c.res.Redis.GetUniversalClient() == nil {
		return healthDown
	}
	if err := c.res.Redis.GetUniversalClient().Ping(ctx).Err(); err != nil {
		c.res.Logger.Warn("redis health check failed", zap.Error(err))
		return healthDown
	}
	return healthUp
}
