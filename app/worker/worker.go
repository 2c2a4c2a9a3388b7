package worker

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
	"backend/insurance-platform/app/service"
)

type Server runtime.Resource

// Start runs the job workers, the claim event listener and the scheduler
// until SIGINT or SIGTERM.
func (s *Server) Start(ctx context.Context) {
	res := runtime.Resource(*s)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repositories := repository.NewRepositories(res)
	managers := manager.NewManagers(res, repositories)

	services, err := service.NewServices(res, managers, repositories)
	if err != nil {
		s.Logger.Error("Failed to initialize services", zap.Error(err))
		return
	}

	s.Logger.Info("Starting dedicated worker server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return services.WorkerService.Start(gctx)
	})
	g.Go(func() error {
		return services.SchedulerService.Start(gctx)
	})
	if services.SQSListenerService != nil {
		g.Go(func() error {
			return services.SQSListenerService.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		s.Logger.Error("Worker server stopped with error", zap.Error(err))
		return
	}
	s.Logger.Info("Worker server stopped")
}
