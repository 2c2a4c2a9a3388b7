package handlers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/worker"
)

// NotifyClaimStatusHandler posts claim status changes to the webhook.
type NotifyClaimStatusHandler struct {
	notifier notifier.Notifier
	logger   *zap.Logger
}

func NewNotifyClaimStatusHandler(n notifier.Notifier, logger *zap.Logger) *NotifyClaimStatusHandler {
	return &NotifyClaimStatusHandler{
		notifier: n,
		logger:   logger.With(zap.String("handler", job.NotifyClaimStatus.String())),
	}
}

func (h *NotifyClaimStatusHandler) Handle(ctx context.Context, j *entity.Job) error {
	var payload worker.NotifyClaimStatusPayload
	if err := decodePayload(j, &payload); err != nil {
		return err
	}
	if err := requireClaimID(j, payload.ClaimID); err != nil {
		return err
	}

	err := h.notifier.Notify(ctx, notifier.ClaimStatusChanged, payload)
	var statusErr *notifier.StatusError
	if errors.As(err, &statusErr) && !statusErr.Retryable() {
		return worker.Permanent(err)
	}
	return err
}

func (h *NotifyClaimStatusHandler) GetType() job.Type {
	return job.NotifyClaimStatus
}
