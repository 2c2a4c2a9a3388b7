package handlers

import (
	"context"

	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/worker"
)

// ClaimTransitioner is the part of manager.ClaimManager the claim handlers use.
type ClaimTransitioner interface {
	GetByID(ctx context.Context, id string) (*response.ClaimResponse, error)
	TransitionStatus(ctx context.Context, id string, req request.UpdateClaimStatusRequest) (*response.ClaimResponse, error)
}

// ReviewClaimHandler moves a pending claim into review.
type ReviewClaimHandler struct {
	claims ClaimTransitioner
	logger *zap.Logger
}

func NewReviewClaimHandler(claims ClaimTransitioner, logger *zap.Logger) *ReviewClaimHandler {
	return &ReviewClaimHandler{
		claims: claims,
		logger: logger.With(zap.String("handler", job.ReviewClaim.String())),
	}
}

func (h *ReviewClaimHandler) Handle(ctx context.Context, j *entity.Job) error {
	var payload worker.ReviewClaimPayload
	if err := decodePayload(j, &payload); err != nil {
		return err
	}
	if err := requireClaimID(j, payload.ClaimID); err != nil {
		return err
	}

	status, err := currentStatus(ctx, h.claims, payload.ClaimID)
	if err != nil {
		return err
	}
	if status == claim.Processing {
		h.logger.Info("Claim already under review", zap.String("claim_id", payload.ClaimID))
		return nil
	}

	_, err = h.claims.TransitionStatus(ctx, payload.ClaimID, request.UpdateClaimStatusRequest{Status: claim.Processing})
	if err != nil {
		return classify(err)
	}

	h.logger.Info("Claim review started", zap.String("job_id", j.ID), zap.String("claim_id", payload.ClaimID))
	return nil
}

func (h *ReviewClaimHandler) GetType() job.Type {
	return job.ReviewClaim
}
