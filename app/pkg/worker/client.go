package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client registers named scheduler tasks. Each job gets its own context that
// StopJob cancels, so a task in flight sees the stop.
type Client interface {
	AddDurationJob(ctx context.Context, taskID uuid.UUID, interval time.Duration, taskName string, args ...any) error
	RunNow(jobID uuid.UUID) error
	IsJobValid(jobID uuid.UUID) bool
	StopJob(jobID uuid.UUID)
	StopAllJobs()
}

type DefaultClient struct {
	log       *zap.Logger
	scheduler Scheduler
	jobPool   JobPool
}

func NewClient(log *zap.Logger, scheduler Scheduler) Client {
	return &DefaultClient{
		log:       log,
		scheduler: scheduler,
		jobPool:   NewJobPool(),
	}
}

func (d *DefaultClient) IsJobValid(jobID uuid.UUID) bool {
	return d.jobPool.IsJobValid(jobID)
}

func (d *DefaultClient) StopJob(jobID uuid.UUID) {
	d.jobPool.StopJob(jobID)
	if err := d.scheduler.RemoveJob(jobID); err != nil {
		d.log.Warn("failed to remove job",
			zap.String("jobID", jobID.String()),
			zap.Error(err),
		)
	}
}

func (d *DefaultClient) StopAllJobs() {
	if err := d.scheduler.StopJobs(); err != nil {
		d.log.Warn("failed to stop scheduled jobs", zap.Error(err))
	}
	d.jobPool.StopAllJobs()
}

// AddDurationJob runs taskName every interval, starting immediately. A run
// still going when the next one is due is skipped.
func (d *DefaultClient) AddDurationJob(ctx context.Context, taskID uuid.UUID, interval time.Duration, taskName string, args ...any) error {
	taskFunc := d.scheduler.GetTask(taskName)
	if taskFunc == nil {
		return fmt.Errorf("task %s is not defined", taskName)
	}

	ctx = d.jobPool.NewJob(ctx, taskID)
	args = append([]any{ctx}, args...)
	_, err := d.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFunc, args...),
		gocron.WithIdentifier(taskID),
		gocron.WithName(taskName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		d.jobPool.StopJob(taskID)
	}
	return err
}

func (d *DefaultClient) RunNow(jobID uuid.UUID) error {
	for _, j := range d.scheduler.Jobs() {
		if j.ID() == jobID {
			return j.RunNow()
		}
	}
	return fmt.Errorf("job %s is not scheduled", jobID)
}
