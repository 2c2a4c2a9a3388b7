package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/worker"
)

// decodePayload fails permanently: a payload that does not decode now never will.
func decodePayload(j *entity.Job, out any) error {
	if err := j.Payload.Decode(out); err != nil {
		return worker.Permanent(fmt.Errorf("invalid %s payload: %w", j.Type, err))
	}
	return nil
}

// classify marks client errors from the managers as permanent. A conflict
// means another writer moved the claim first, so it is worth another look.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError && httpErr.Code != http.StatusConflict {
		return worker.Permanent(err)
	}
	return err
}

func requireClaimID(j *entity.Job, claimID string) error {
	if claimID == "" {
		return worker.Permanent(fmt.Errorf("%s payload is missing claim_id", j.Type))
	}
	return nil
}

// currentStatus lets the claim handlers treat a redelivered job as done.
func currentStatus(ctx context.Context, claims ClaimTransitioner, claimID string) (claim.Status, error) {
	c, err := claims.GetByID(ctx, claimID)
	if err != nil {
		return "", classify(err)
	}
	return c.Status, nil
}
