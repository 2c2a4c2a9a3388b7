package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
	"backend/insurance-platform/app/pkg/locker"
	"backend/insurance-platform/app/pkg/worker"
)

const (
	PaymentReminderTask = "payment-reminders"

	defaultReminderInterval = time.Hour
	defaultReminderWindow   = 7 * 24 * time.Hour
)

// SchedulerService runs recurring tasks on gocron. A redis lock makes each
// run happen on one instance only.
type SchedulerService struct {
	scheduler worker.Scheduler
	client    worker.Client
	payments  manager.PaymentManager
	cfg       config.SchedulerConfig
	logger    *zap.Logger
}

func NewSchedulerService(res runtime.Resource, managers *manager.Managers) (*SchedulerService, error) {
	logger := res.Logger.With(zap.String("component", "scheduler_service"))

	var l locker.Locker
	if res.Redis != nil {
		var err error
		if l, err = locker.NewTryLocker(res.Redis.GetUniversalClient(), res.Config.SchedulerConfig.LockExpiry); err != nil {
			return nil, err
		}
	}

	scheduler, err := worker.NewScheduler(res.Config.SchedulerConfig, res.Logger, l)
	if err != nil {
		return nil, err
	}

	s := &SchedulerService{
		scheduler: scheduler,
		client:    worker.NewClient(logger, scheduler),
		payments:  managers.PaymentManager,
		cfg:       res.Config.SchedulerConfig,
		logger:    logger,
	}
	scheduler.ImportTasks(map[string]any{
		PaymentReminderTask: s.sendPaymentReminders,
	})
	return s, nil
}

// Start registers the recurring tasks and runs the scheduler until ctx is
// cancelled.
func (s *SchedulerService) Start(ctx context.Context) error {
	interval := s.cfg.PaymentReminderInterval
	if interval <= 0 {
		interval = defaultReminderInterval
	}
	window := s.cfg.PaymentReminderWindow
	if window <= 0 {
		window = defaultReminderWindow
	}

	if err := s.client.AddDurationJob(ctx, uuid.New(), interval, PaymentReminderTask, window); err != nil {
		return err
	}

	s.logger.Info("Starting scheduler", zap.Duration("payment_reminder_interval", interval))
	s.scheduler.Start()

	<-ctx.Done()
	s.logger.Info("Shutting down scheduler")
	s.client.StopAllJobs()
	return s.scheduler.Shutdown()
}

func (s *SchedulerService) sendPaymentReminders(ctx context.Context, window time.Duration) {
	if ctx.Err() != nil {
		return
	}
	sent, err := s.payments.SendDueReminders(ctx, window)
	if err != nil {
		s.logger.Error("Payment reminder run failed", zap.Error(err))
		return
	}
	s.logger.Info("Payment reminder run finished", zap.Int("sent", sent))
}
