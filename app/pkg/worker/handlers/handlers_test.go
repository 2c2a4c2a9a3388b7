package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/worker"
)

type fakeClaims struct {
	status       claim.Status
	getErr       error
	transitionTo []request.UpdateClaimStatusRequest
	transitErr   error
}

func (f *fakeClaims) GetByID(_ context.Context, id string) (*response.ClaimResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &response.ClaimResponse{ID: id, Status: f.status}, nil
}

func (f *fakeClaims) TransitionStatus(_ context.Context, id string, req request.UpdateClaimStatusRequest) (*response.ClaimResponse, error) {
	if f.transitErr != nil {
		return nil, f.transitErr
	}
	f.transitionTo = append(f.transitionTo, req)
	f.status = req.Status
	return &response.ClaimResponse{ID: id, Status: req.Status}, nil
}

func newJob(t *testing.T, jobType job.Type, payload any) *entity.Job {
	t.Helper()
	p, err := entity.NewJobPayload(payload)
	require.NoError(t, err)
	return &entity.Job{ID: "job-1", Type: jobType, Payload: p, MaxAttempts: 3}
}

func TestReviewClaimHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("moves pending claim to processing", func(t *testing.T) {
		claims := &fakeClaims{status: claim.Pending}
		h := NewReviewClaimHandler(claims, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.ReviewClaim, worker.ReviewClaimPayload{ClaimID: "c1"}))
		require.NoError(t, err)
		require.Len(t, claims.transitionTo, 1)
		assert.Equal(t, claim.Processing, claims.transitionTo[0].Status)
	})

	t.Run("claim already in review is a no-op", func(t *testing.T) {
		claims := &fakeClaims{status: claim.Processing}
		h := NewReviewClaimHandler(claims, zap.NewNop())

		require.NoError(t, h.Handle(ctx, newJob(t, job.ReviewClaim, worker.ReviewClaimPayload{ClaimID: "c1"})))
		assert.Empty(t, claims.transitionTo)
	})

	t.Run("missing claim id is permanent", func(t *testing.T) {
		h := NewReviewClaimHandler(&fakeClaims{}, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.ReviewClaim, map[string]any{}))
		assert.True(t, worker.IsPermanent(err))
	})

	t.Run("unknown claim is permanent", func(t *testing.T) {
		claims := &fakeClaims{getErr: exception.NewNotFoundError(nil, int(exception.ErrorCodeEntityNotFound), exception.ErrClaimNotFound.Error())}
		h := NewReviewClaimHandler(claims, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.ReviewClaim, worker.ReviewClaimPayload{ClaimID: "missing"}))
		assert.True(t, worker.IsPermanent(err))
	})

	t.Run("conflict is retried", func(t *testing.T) {
		claims := &fakeClaims{
			status:     claim.Pending,
			transitErr: exception.NewConflictError(nil, int(exception.ErrorCodeConflict), exception.ErrConflict.Error()),
		}
		h := NewReviewClaimHandler(claims, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.ReviewClaim, worker.ReviewClaimPayload{ClaimID: "c1"}))
		require.Error(t, err)
		assert.False(t, worker.IsPermanent(err))
	})
}

func TestSettleClaimHandler(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(1200)

	t.Run("approves with settlement amount", func(t *testing.T) {
		claims := &fakeClaims{status: claim.Processing}
		h := NewSettleClaimHandler(claims, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.SettleClaim, worker.SettleClaimPayload{
			ClaimID:          "c1",
			Status:           claim.Approved,
			SettlementAmount: &amount,
		}))
		require.NoError(t, err)
		require.Len(t, claims.transitionTo, 1)
		assert.Equal(t, claim.Approved, claims.transitionTo[0].Status)
		require.NotNil(t, claims.transitionTo[0].SettlementAmount)
		assert.True(t, amount.Equal(*claims.transitionTo[0].SettlementAmount))
	})

	t.Run("non terminal status is permanent", func(t *testing.T) {
		h := NewSettleClaimHandler(&fakeClaims{status: claim.Processing}, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.SettleClaim, worker.SettleClaimPayload{ClaimID: "c1", Status: claim.Processing}))
		assert.True(t, worker.IsPermanent(err))
	})

	t.Run("invalid transition is permanent", func(t *testing.T) {
		claims := &fakeClaims{
			status:     claim.Approved,
			transitErr: exception.NewBadRequestError(nil, int(exception.ErrorCodeInvalidStatusTransition), "no"),
		}
		h := NewSettleClaimHandler(claims, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.SettleClaim, worker.SettleClaimPayload{ClaimID: "c1", Status: claim.Rejected}))
		assert.True(t, worker.IsPermanent(err))
	})

	t.Run("already settled is a no-op", func(t *testing.T) {
		claims := &fakeClaims{status: claim.Rejected}
		h := NewSettleClaimHandler(claims, zap.NewNop())

		require.NoError(t, h.Handle(ctx, newJob(t, job.SettleClaim, worker.SettleClaimPayload{ClaimID: "c1", Status: claim.Rejected})))
		assert.Empty(t, claims.transitionTo)
	})
}

type fakeNotifier struct {
	events []string
	err    error
}

func (f *fakeNotifier) Notify(_ context.Context, event string, _ any) error {
	f.events = append(f.events, event)
	return f.err
}

func TestNotifyClaimStatusHandler(t *testing.T) {
	ctx := context.Background()
	payload := worker.NotifyClaimStatusPayload{ClaimID: "c1", From: claim.Pending, To: claim.Processing}

	t.Run("posts the event", func(t *testing.T) {
		n := &fakeNotifier{}
		h := NewNotifyClaimStatusHandler(n, zap.NewNop())

		require.NoError(t, h.Handle(ctx, newJob(t, job.NotifyClaimStatus, payload)))
		assert.Equal(t, []string{notifier.ClaimStatusChanged}, n.events)
	})

	t.Run("client error is permanent", func(t *testing.T) {
		h := NewNotifyClaimStatusHandler(&fakeNotifier{err: &notifier.StatusError{Code: 404}}, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.NotifyClaimStatus, payload))
		assert.True(t, worker.IsPermanent(err))
	})

	t.Run("server error is retried", func(t *testing.T) {
		h := NewNotifyClaimStatusHandler(&fakeNotifier{err: &notifier.StatusError{Code: 503}}, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.NotifyClaimStatus, payload))
		require.Error(t, err)
		assert.False(t, worker.IsPermanent(err))
	})

	t.Run("transport error is retried", func(t *testing.T) {
		h := NewNotifyClaimStatusHandler(&fakeNotifier{err: errors.New("connection refused")}, zap.NewNop())

		err := h.Handle(ctx, newJob(t, job.NotifyClaimStatus, payload))
		require.Error(t, err)
		assert.False(t, worker.IsPermanent(err))
	})
}
