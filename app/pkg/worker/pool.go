package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/queue"
)

const (
	defaultJobTimeout     = 5 * time.Minute
	defaultBaseRetryDelay = 30 * time.Second
	defaultMaxRetryDelay  = 10 * time.Minute

	promoteInterval = 5 * time.Second
	statsInterval   = 30 * time.Second
	// Bookkeeping writes after a job ran must survive pool shutdown
	bookkeepingTimeout = 30 * time.Second
)

type Pool interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	GetStats() PoolStats
}

type PoolStats struct {
	TotalWorkers   int              `json:"total_workers"`
	ActiveWorkers  int              `json:"active_workers"`
	ProcessingJobs int              `json:"processing_jobs"`
	TotalProcessed int64            `json:"total_processed"`
	TotalFailed    int64            `json:"total_failed"`
	QueueDepths    map[string]int64 `json:"queue_depths"`
}

type workerPool struct {
	cfg             config.WorkerConfig
	queue           queue.Queue
	jobRepo         repository.JobRepository
	handlerRegistry JobHandlerRegistry
	logger          *zap.Logger
	now             func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats      PoolStats
	statsMutex sync.RWMutex
}

func NewWorkerPool(
	cfg config.WorkerConfig,
	queue queue.Queue,
	jobRepo repository.JobRepository,
	handlerRegistry JobHandlerRegistry,
	logger *zap.Logger,
) Pool {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = defaultJobTimeout
	}
	if cfg.BaseRetryDelay <= 0 {
		cfg.BaseRetryDelay = defaultBaseRetryDelay
	}
	if cfg.MaxRetryDelay <= 0 {
		cfg.MaxRetryDelay = defaultMaxRetryDelay
	}

	return &workerPool{
		cfg:             cfg,
		queue:           queue,
		jobRepo:         jobRepo,
		handlerRegistry: handlerRegistry,
		logger:          logger.With(zap.String("component", "worker_pool")),
		now:             time.Now,
		stats: PoolStats{
			QueueDepths: make(map[string]int64),
		},
	}
}

func (p *workerPool) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.logger.Info("Starting worker pool", zap.Int("workers", p.cfg.PoolSize))

	p.statsMutex.Lock()
	p.stats.TotalWorkers = p.cfg.PoolSize
	p.statsMutex.Unlock()

	for i := 0; i < p.cfg.PoolSize; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}

	p.wg.Add(2)
	go p.runStatsCollector()
	go p.runScheduledPromoter()

	return nil
}

func (p *workerPool) Stop(ctx context.Context) error {
	p.logger.Info("Stopping worker pool")

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Worker pool stopped successfully")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Worker pool stop timeout")
		return ctx.Err()
	}
}

func (p *workerPool) GetStats() PoolStats {
	p.statsMutex.RLock()
	defer p.statsMutex.RUnlock()

	stats := p.stats
	stats.QueueDepths = make(map[string]int64, len(p.stats.QueueDepths))
	for k, v := range p.stats.QueueDepths {
		stats.QueueDepths[k] = v
	}

	return stats
}

func (p *workerPool) runWorker(workerID int) {
	defer p.wg.Done()

	logger := p.logger.With(zap.Int("worker_id", workerID))
	logger.Debug("Worker started")

	queues := queue.GetPriorityQueues()

	for {
		if p.ctx.Err() != nil {
			logger.Debug("Worker stopping")
			return
		}

		job, err := p.queue.Dequeue(p.ctx, queues)
		if err != nil {
			if p.ctx.Err() != nil {
				return
			}
			logger.Error("Failed to dequeue job", zap.Error(err))
			select {
			case <-time.After(time.Second):
			case <-p.ctx.Done():
				return
			}
			continue
		}

		if job == nil {
			continue
		}

		p.incrementActiveWorkers()
		p.processJob(logger, job)
		p.decrementActiveWorkers()
	}
}

func (p *workerPool) processJob(logger *zap.Logger, jobEntity *entity.Job) {
	jobLogger := logger.With(
		zap.String("job_id", jobEntity.ID),
		zap.String("job_type", jobEntity.Type.String()),
		zap.String("priority", jobEntity.Priority.String()),
	)

	jobLogger.Info("Processing job")

	opCtx, cancel := context.WithTimeout(context.Background(), bookkeepingTimeout)
	defer cancel()

	if err := p.queue.MarkProcessing(opCtx, jobEntity.ID); err != nil {
		jobLogger.Error("Failed to mark job as processing", zap.Error(err))
		return
	}

	if err := p.jobRepo.UpdateJobToProcessing(opCtx, jobEntity.ID, p.now().UTC()); err != nil {
		jobLogger.Error("Failed to update job to processing state", zap.Error(err))
	}

	handler, exists := p.handlerRegistry.Get(jobEntity.Type)
	if !exists {
		err := Permanent(fmt.Errorf("no handler found for job type: %s", jobEntity.Type))
		p.handleJobFailure(jobLogger, jobEntity, err)
		return
	}

	handleCtx, cancelHandle := context.WithTimeout(p.ctx, p.cfg.JobTimeout)
	err := handler.Handle(handleCtx, jobEntity)
	cancelHandle()

	if err != nil {
		p.handleJobFailure(jobLogger, jobEntity, err)
		return
	}

	p.handleJobSuccess(jobLogger, jobEntity)
}

func (p *workerPool) handleJobSuccess(logger *zap.Logger, jobEntity *entity.Job) {
	cleanupCtx, cancel := context.WithTimeout(context.Background(), bookkeepingTimeout)
	defer cancel()

	if err := p.jobRepo.UpdateJobToCompleted(cleanupCtx, jobEntity.ID, p.now().UTC()); err != nil {
		logger.Error("Failed to update job to completed state", zap.Error(err))
	}

	if err := p.queue.MarkCompleted(cleanupCtx, jobEntity.ID); err != nil {
		logger.Error("Failed to mark job as completed in queue", zap.Error(err))
	}

	p.incrementTotalProcessed()
	logger.Info("Job completed successfully")
}

func (p *workerPool) handleJobFailure(logger *zap.Logger, jobEntity *entity.Job, jobErr error) {
	logger.Error("Job failed", zap.Error(jobErr))

	jobEntity.Attempts++

	cleanupCtx, cancel := context.WithTimeout(context.Background(), bookkeepingTimeout)
	defer cancel()

	if IsPermanent(jobErr) || !jobEntity.CanRetry() {
		if err := p.jobRepo.UpdateJobToFailed(cleanupCtx, jobEntity.ID, jobErr.Error()); err != nil {
			logger.Error("Failed to update job to failed state", zap.Error(err))
		}
		logger.Info("Job permanently failed", zap.Int("attempts", jobEntity.Attempts))
	} else {
		retryDelay := RetryDelay(p.cfg.BaseRetryDelay, p.cfg.MaxRetryDelay, jobEntity.Attempts)
		retryAt := p.now().UTC().Add(retryDelay)

		if err := p.jobRepo.UpdateJobToRetrying(cleanupCtx, jobEntity.ID, jobErr.Error(), retryAt); err != nil {
			logger.Error("Failed to update job to retrying state", zap.Error(err))
		}

		logger.Info("Job scheduled for retry",
			zap.Int("attempts", jobEntity.Attempts),
			zap.Duration("retry_delay", retryDelay))
	}

	if err := p.queue.MarkFailed(cleanupCtx, jobEntity.ID); err != nil {
		logger.Error("Failed to clear processing marker", zap.Error(err))
	}

	p.incrementTotalFailed()
}

// RetryDelay doubles base for every attempt after the first, capped at maxDelay.
func RetryDelay(base, maxDelay time.Duration, attempts int) time.Duration {
	delay := base
	for i := 1; i < attempts; i++ {
		if delay >= maxDelay {
			break
		}
		delay *= 2
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (p *workerPool) runScheduledPromoter() {
	defer p.wg.Done()

	ticker := time.NewTicker(promoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			promoted, err := p.queue.PromoteDue(p.ctx, p.now())
			if err != nil {
				if p.ctx.Err() == nil {
					p.logger.Error("Failed to promote scheduled jobs", zap.Error(err))
				}
				continue
			}
			if promoted > 0 {
				p.logger.Info("Promoted scheduled jobs", zap.Int("count", promoted))
			}
		}
	}
}

func (p *workerPool) runStatsCollector() {
	defer p.wg.Done()

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.collectQueueStats()
		}
	}
}

func (p *workerPool) collectQueueStats() {
	depths := make(map[string]int64)
	for _, queueName := range queue.GetPriorityQueues() {
		depth, err := p.queue.GetQueueDepth(p.ctx, queueName)
		if err != nil {
			p.logger.Error("Failed to get queue depth", zap.String("queue", queueName), zap.Error(err))
			continue
		}
		depths[queueName] = depth
	}

	p.statsMutex.Lock()
	defer p.statsMutex.Unlock()
	for k, v := range depths {
		p.stats.QueueDepths[k] = v
	}
}

func (p *workerPool) incrementActiveWorkers() {
	p.statsMutex.Lock()
	defer p.statsMutex.Unlock()
	p.stats.ActiveWorkers++
	p.stats.ProcessingJobs++
}

func (p *workerPool) decrementActiveWorkers() {
	p.statsMutex.Lock()
	defer p.statsMutex.Unlock()
	if p.stats.ActiveWorkers > 0 {
		p.stats.ActiveWorkers--
	}
	if p.stats.ProcessingJobs > 0 {
		p.stats.ProcessingJobs--
	}
}

func (p *workerPool) incrementTotalProcessed() {
	p.statsMutex.Lock()
	defer p.statsMutex.Unlock()
	p.stats.TotalProcessed++
}

func (p *workerPool) incrementTotalFailed() {
	p.statsMutex.Lock()
	defer p.statsMutex.Unlock()
	p.stats.TotalFailed++
}
