package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/queue"
	"backend/insurance-platform/app/pkg/worker"
	"backend/insurance-platform/app/pkg/worker/handlers"
)

const (
	retryBatchSize      = 100
	defaultRetryScan    = time.Minute
	defaultHealthPeriod = time.Minute
	shutdownTimeout     = 30 * time.Second
)

// WorkerService runs the job worker pool together with the loop that puts
// jobs due for another attempt back on the queue.
type WorkerService struct {
	workerPool   worker.Pool
	jobRepo      repository.JobRepository
	queue        queue.Queue
	logger       *zap.Logger
	workerConfig config.WorkerConfig
	now          func() time.Time
}

func NewWorkerService(res runtime.Resource, managers *manager.Managers, repositories *repository.Repositories) *WorkerService {
	logger := res.Logger.With(zap.String("component", "worker_service"))
	redisQueue := queue.NewRedisQueue(res.Redis.GetUniversalClient(), logger)

	n := res.Clients.Notifier
	if n == nil {
		n = notifier.NewNotifier(res.Config.NotifierConfig, res.HttpClient, res.Logger)
	}

	registry := worker.NewJobHandlerRegistry(logger)
	registry.Register(handlers.NewReviewClaimHandler(managers.ClaimManager, logger))
	registry.Register(handlers.NewSettleClaimHandler(managers.ClaimManager, logger))
	registry.Register(handlers.NewNotifyClaimStatusHandler(n, logger))

	return newWorkerService(
		worker.NewWorkerPool(res.Config.WorkerConfig, redisQueue, repositories.JobRepository, registry, logger),
		repositories.JobRepository,
		redisQueue,
		res.Config.WorkerConfig,
		logger,
	)
}

func newWorkerService(pool worker.Pool, jobRepo repository.JobRepository, q queue.Queue, cfg config.WorkerConfig, logger *zap.Logger) *WorkerService {
	return &WorkerService{
		workerPool:   pool,
		jobRepo:      jobRepo,
		queue:        q,
		logger:       logger,
		workerConfig: cfg,
		now:          time.Now,
	}
}

// Start runs until ctx is cancelled, then stops the pool.
func (ws *WorkerService) Start(ctx context.Context) error {
	ws.logger.Info("Starting worker service", zap.Int("pool_size", ws.workerConfig.PoolSize))

	if err := ws.workerPool.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ws.runRetryScheduler(gctx)
		return nil
	})
	g.Go(func() error {
		ws.runHealthMonitor(gctx)
		return nil
	})

	<-ctx.Done()
	ws.logger.Info("Shutting down worker service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopErr := ws.workerPool.Stop(shutdownCtx)
	if stopErr != nil {
		ws.logger.Error("Failed to stop worker pool gracefully", zap.Error(stopErr))
	}

	_ = g.Wait()
	ws.logger.Info("Worker service stopped")
	return stopErr
}

func (ws *WorkerService) GetStats() worker.PoolStats {
	return ws.workerPool.GetStats()
}

func (ws *WorkerService) runRetryScheduler(ctx context.Context) {
	interval := ws.workerConfig.RetryScanInterval
	if interval <= 0 {
		interval = defaultRetryScan
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	retryLogger := ws.logger.With(zap.String("component", "retry_scheduler"))
	retryLogger.Info("Starting retry scheduler", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			retryLogger.Info("Retry scheduler stopping")
			return
		case <-ticker.C:
			ws.requeueRetryableJobs(ctx, retryLogger)
		}
	}
}

// requeueRetryableJobs moves retrying jobs whose backoff has passed back to
// pending and onto the queue. It returns how many were requeued.
func (ws *WorkerService) requeueRetryableJobs(ctx context.Context, logger *zap.Logger) int {
	jobs, err := ws.jobRepo.GetRetryableJobs(ctx, ws.now().UTC(), retryBatchSize)
	if err != nil {
		logger.Error("Failed to get retryable jobs", zap.Error(err))
		return 0
	}

	requeued := 0
	for _, j := range jobs {
		if err := ws.jobRepo.ResetToPending(ctx, j.ID); err != nil {
			logger.Error("Failed to reset job for retry",
				zap.String("job_id", j.ID),
				zap.Error(err))
			continue
		}

		if err := ws.queue.Enqueue(ctx, j); err != nil {
			logger.Error("Failed to re-enqueue job",
				zap.String("job_id", j.ID),
				zap.Error(err))
			continue
		}

		requeued++
		logger.Info("Job re-queued for retry",
			zap.String("job_id", j.ID),
			zap.Int("attempts", j.Attempts))
	}
	return requeued
}

func (ws *WorkerService) runHealthMonitor(ctx context.Context) {
	interval := ws.workerConfig.HealthMonitorInterval
	if interval <= 0 {
		interval = defaultHealthPeriod
		ws.logger.Warn("Invalid health monitor interval, using default",
			zap.Duration("configured", ws.workerConfig.HealthMonitorInterval),
			zap.Duration("default", interval))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthLogger := ws.logger.With(zap.String("component", "health_monitor"))
	healthLogger.Info("Starting health monitor", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			healthLogger.Info("Health monitor stopping")
			return
		case <-ticker.C:
			stats := ws.workerPool.GetStats()
			healthLogger.Info("Worker pool stats",
				zap.Int("active_workers", stats.ActiveWorkers),
				zap.Int("processing_jobs", stats.ProcessingJobs),
				zap.Int64("total_processed", stats.TotalProcessed),
				zap.Int64("total_failed", stats.TotalFailed),
				zap.Any("queue_depths", stats.QueueDepths))
		}
	}
}
