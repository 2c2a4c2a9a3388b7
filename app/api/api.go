package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"backend/insurance-platform/app/api/controller"
	"backend/insurance-platform/app/api/middleware"
	"backend/insurance-platform/app/api/router"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/internal/validator"
	"backend/insurance-platform/app/manager"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

const defaultShutdownTimeout = 30 * time.Second

type Server runtime.Resource

// Start serves the portal API until ctx is cancelled, SIGINT or SIGTERM
// arrives, or the listener fails, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := s.newRouter()
	address := fmt.Sprintf(":%d", s.Config.ServerConfig.Port)

	serverErr := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting HTTP Server",
			zap.String("address", address),
			zap.String("env", string(ctxutil.GetAppModeFromEnv())))
		serverErr <- r.StartH2CServer(address, &http2.Server{})
	}()

	select {
	case <-ctx.Done():
		s.Logger.Info("Received shutdown signal")
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("HTTP server stopped, initiating shutdown", zap.Error(err))
		}
	}

	s.shutdown(r)
}

func (s *Server) newRouter() *router.Router {
	res := runtime.Resource(*s)

	repositories := repository.NewRepositories(res)
	managers := manager.NewManagers(res, repositories)

	return router.NewRouter(
		res,
		validator.NewValidators(res),
		middleware.NewMiddleware(res),
		controller.NewControllers(managers, res),
		repositories,
	)
}

func (s *Server) shutdown(r *router.Router) {
	timeout := s.Config.ServerConfig.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := r.Shutdown(ctx); err != nil {
		s.Logger.Error("Could not shutdown HTTP server gracefully", zap.Error(err))
		return
	}
	s.Logger.Info("HTTP Server shutdown gracefully")
}
