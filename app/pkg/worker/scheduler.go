package worker

import (
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/locker"
)

type Scheduler interface {
	gocron.Scheduler
	ImportTasks(taskList map[string]any)
	GetTask(taskName string) any
}

type DefaultScheduler struct {
	gocron.Scheduler
	log      *zap.Logger
	taskList map[string]any
}

// NewScheduler builds a gocron scheduler. With a non-nil locker every
// recurring run is taken by a single instance across the deployment.
func NewScheduler(cfg config.SchedulerConfig, log *zap.Logger, locker locker.Locker) (Scheduler, error) {
	concurrent := cfg.ConcurrentJobs
	if concurrent == 0 {
		concurrent = 1
	}

	options := []gocron.SchedulerOption{
		gocron.WithLimitConcurrentJobs(concurrent, gocron.LimitModeWait),
		gocron.WithLogger(NewWorkerLog(log.Sugar())),
	}
	if locker != nil {
		options = append(options, gocron.WithDistributedLocker(locker))
	}

	cron, err := gocron.NewScheduler(options...)
	return &DefaultScheduler{
		log:       log,
		Scheduler: cron,
		taskList:  map[string]any{},
	}, err
}

func (d *DefaultScheduler) ImportTasks(taskList map[string]any) {
	for taskName, taskFunc := range taskList {
		d.taskList[taskName] = taskFunc
	}
}

func (d *DefaultScheduler) GetTask(taskName string) any {
	return d.taskList[taskName]
}
