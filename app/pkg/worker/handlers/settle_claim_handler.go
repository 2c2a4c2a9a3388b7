package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/worker"
)

// SettleClaimHandler approves or rejects a claim under review.
type SettleClaimHandler struct {
	claims ClaimTransitioner
	logger *zap.Logger
}

func NewSettleClaimHandler(claims ClaimTransitioner, logger *zap.Logger) *SettleClaimHandler {
	return &SettleClaimHandler{
		claims: claims,
		logger: logger.With(zap.String("handler", job.SettleClaim.String())),
	}
}

func (h *SettleClaimHandler) Handle(ctx context.Context, j *entity.Job) error {
	var payload worker.SettleClaimPayload
	if err := decodePayload(j, &payload); err != nil {
		return err
	}
	if err := requireClaimID(j, payload.ClaimID); err != nil {
		return err
	}
	if !payload.Status.IsTerminal() {
		return worker.Permanent(fmt.Errorf("settlement status must be approved or rejected, got %q", payload.Status))
	}

	status, err := currentStatus(ctx, h.claims, payload.ClaimID)
	if err != nil {
		return err
	}
	if status == payload.Status {
		h.logger.Info("Claim already settled", zap.String("claim_id", payload.ClaimID))
		return nil
	}

	_, err = h.claims.TransitionStatus(ctx, payload.ClaimID, request.UpdateClaimStatusRequest{
		Status:           payload.Status,
		SettlementAmount: payload.SettlementAmount,
		RejectionReason:  payload.RejectionReason,
	})
	if err != nil {
		return classify(err)
	}

	h.logger.Info("Claim settled",
		zap.String("job_id", j.ID),
		zap.String("claim_id", payload.ClaimID),
		zap.String("status", payload.Status.String()))
	return nil
}

func (h *SettleClaimHandler) GetType() job.Type {
	return job.SettleClaim
}

