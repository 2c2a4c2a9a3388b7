package integration

import (
	"context"
	"errors"
	"sync"
	"time"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/manager"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/worker"
	"backend/insurance-platform/app/service"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event string, _ any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func (n *recordingNotifier) fail(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

func (s *RouterSuite) managersWith(n notifier.Notifier) *manager.Managers {
	res := s.resource.Resource
	res.Clients.Notifier = n
	return manager.NewManagers(res, s.repositories)
}

func (s *RouterSuite) TestReviewJobMovesClaimToProcessing() {
	n := &recordingNotifier{}
	res := s.resource.Resource
	res.Clients.Notifier = n
	managers := manager.NewManagers(res, s.repositories)

	created, err := managers.JobManager.CreateJob(s.ctx, manager.CreateJobRequest{
		Type:     job.ReviewClaim,
		Priority: job.PriorityNormal,
		Payload:  worker.ReviewClaimPayload{ClaimID: "3"},
	})
	s.r.NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() {
		done <- service.NewWorkerService(res, managers, s.repositories).Start(ctx)
	}()
	defer func() {
		cancel()
		s.a.NoError(<-done)
	}()

	s.r.Eventually(func() bool {
		j, err := managers.JobManager.GetJob(s.ctx, created.ID)
		return err == nil && j.Status == job.Completed
	}, 5*time.Second, 50*time.Millisecond)

	c, err := managers.ClaimManager.GetByID(s.ctx, "3")
	s.r.NoError(err)
	s.a.Equal(claim.Processing, c.Status)

	s.r.Eventually(func() bool {
		return len(n.sent()) == 1
	}, 5*time.Second, 50*time.Millisecond, "status change is announced by a follow-up job")
	s.a.Equal([]string{notifier.ClaimStatusChanged}, n.sent())
}

func (s *RouterSuite) TestPaymentReminders() {
	n := &recordingNotifier{}
	payments := s.managersWith(n).PaymentManager
	window := 7 * 24 * time.Hour

	n.fail(errors.New("webhook down"))
	sent, err := payments.SendDueReminders(s.ctx, window)
	s.r.NoError(err)
	s.a.Zero(sent)

	n.fail(nil)
	sent, err = payments.SendDueReminders(s.ctx, window)
	s.r.NoError(err)
	s.a.Equal(1, sent)
	s.a.Equal([]string{notifier.PaymentDue}, n.sent())

	sent, err = payments.SendDueReminders(s.ctx, window)
	s.r.NoError(err)
	s.a.Zero(sent, "a payment is reminded once")

	sent, err = payments.SendDueReminders(s.ctx, 14*24*time.Hour)
	s.r.NoError(err)
	s.a.Equal(1, sent)
}
