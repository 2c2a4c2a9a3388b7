package manager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/claimprogress"
	"backend/insurance-platform/app/pkg/logging"
	"backend/insurance-platform/app/pkg/redis"
	"backend/insurance-platform/app/pkg/util"
	"backend/insurance-platform/app/pkg/util/collection"
	validatorUtil "backend/insurance-platform/app/pkg/util/validator"
	"backend/insurance-platform/app/pkg/worker"
)

const (
	progressCacheKey        = "claim_progress:%s:%s:%s"
	defaultProgressCacheTTL = time.Hour
)

var claimSortColumns = []string{"filed_date", "created_at", "amount", "incident_date"}

type ClaimManager interface {
	List(ctx context.Context, userID string, req request.ListClaimsRequest) (response.PaginationResponse[response.ClaimResponse], error)
	GetByID(ctx context.Context, id string) (*response.ClaimResponse, error)
	GetByPolicyID(ctx context.Context, policyID string) ([]response.ClaimResponse, error)
	Create(ctx context.Context, userID string, req request.CreateClaimRequest) (*response.ClaimResponse, error)
	Update(ctx context.Context, id string, req request.UpdateClaimRequest) (*response.ClaimResponse, error)
	Delete(ctx context.Context, id string) error
	TransitionStatus(ctx context.Context, id string, req request.UpdateClaimStatusRequest) (*response.ClaimResponse, error)
	GetProgress(ctx context.Context, id string, today time.Time) (*response.ProgressResponse, error)
	GetTimeline(claimType claim.Type) response.TimelineResponse
	ListTimelines() []response.TimelineResponse
}

type DefaultClaimManager struct {
	res          runtime.Resource
	logger       *zap.Logger
	repositories *repository.Repositories
	jobManager   JobManager
	now          func() time.Time
}

func NewClaimManager(
	res runtime.Resource,
	repositories *repository.Repositories,
	jobManager JobManager,
	now func() time.Time,
) ClaimManager {
	return &DefaultClaimManager{
		res:          res,
		logger:       res.Logger.With(zap.String("component", "claim_manager")),
		repositories: repositories,
		jobManager:   jobManager,
		now:          now,
	}
}

func (d *DefaultClaimManager) List(
	ctx context.Context,
	userID string,
	req request.ListClaimsRequest,
) (response.PaginationResponse[response.ClaimResponse], error) {
	page := req.ToPage(claimSortColumns...)
	claims, total, err := d.repositories.ClaimRepository.FindMany(ctx, repository.ClaimFilter{
		UserID:   userID,
		PolicyID: req.PolicyID,
		Status:   req.Status,
		Type:     req.Type,
	}, page)
	if err != nil {
		d.logger.Error("failed to list claims", zap.Error(err))
		return response.PaginationResponse[response.ClaimResponse]{}, exception.NewInternalServerError(
			err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	req.LoadDefaultValues()
	return response.ToPaginationResponse(
		collection.Map(claims, response.NewClaimResponse),
		int64(total), req.Page, req.Size,
	), nil
}

func (d *DefaultClaimManager) GetByID(ctx context.Context, id string) (*response.ClaimResponse, error) {
	c, err := d.findClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	res := response.NewClaimResponse(*c)
	return &res, nil
}

func (d *DefaultClaimManager) GetByPolicyID(ctx context.Context, policyID string) ([]response.ClaimResponse, error) {
	exists, err := d.repositories.PolicyRepository.Exists(ctx, policyID)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}
	if !exists {
		return nil, exception.NewNotFoundError(nil, int(exception.ErrorCodeEntityNotFound), exception.ErrPolicyNotFound.Error())
	}

	claims, err := d.repositories.ClaimRepository.FindByPolicyID(ctx, policyID)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrClaimNotFound)
	}
	return collection.Map(claims, response.NewClaimResponse), nil
}

func (d *DefaultClaimManager) Create(ctx context.Context, userID string, req request.CreateClaimRequest) (*response.ClaimResponse, error) {
	incident, err := req.ParsedIncidentDate()
	if err != nil {
		return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "incident_date must use YYYY-MM-DD")
	}
	now := d.now().UTC()
	if err := validatorUtil.ValidateIncidentDate(incident, now); err != nil {
		return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeValidationFailed), err.Error())
	}
	if err := validateClaimFields(&req.Description, &req.Amount); err != nil {
		return nil, err
	}

	if _, err := d.repositories.PolicyRepository.FindByID(ctx, req.PolicyID); err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}

	c := &entity.Claim{
		ID:           uuid.NewString(),
		UserID:       userID,
		PolicyID:     req.PolicyID,
		Type:         req.Type,
		Status:       claim.Pending,
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount,
		IncidentDate: incident,
		FiledDate:    util.TruncateToDay(now),
		CreatedAt:    now,
	}
	if _, err := d.repositories.ClaimRepository.Insert(ctx, c); err != nil {
		logging.FromContext(ctx, d.logger).Error("failed to create claim", zap.Error(err))
		return nil, exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	logging.FromContext(ctx, d.logger).Info("claim filed",
		zap.String("claim_id", c.ID),
		zap.String("policy_id", c.PolicyID),
		zap.String("type", c.Type.String()))

	res := response.NewClaimResponse(*c)
	return &res, nil
}

func (d *DefaultClaimManager) Update(ctx context.Context, id string, req request.UpdateClaimRequest) (*response.ClaimResponse, error) {
	c, err := d.findClaim(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateClaimFields(req.Description, req.Amount); err != nil {
		return nil, err
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
	}
	if req.EstimatedSettlement != nil {
		c.EstimatedSettlement = decimal.NewNullDecimal(*req.EstimatedSettlement)
	}

	if err := d.repositories.ClaimRepository.Update(ctx, c); err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrClaimNotFound)
	}

	res := response.NewClaimResponse(*c)
	return &res, nil
}

// validateClaimFields re-checks the free text and amount after trimming.
// Nil fields are not being changed.
func validateClaimFields(description *string, amount *decimal.Decimal) error {
	var errs []error
	if description != nil {
		errs = append(errs, validatorUtil.ValidateClaimDescription(*description))
	}
	if amount != nil {
		errs = append(errs, validatorUtil.ValidatePositiveAmount(*amount, "amount"))
	}
	if err := errors.Join(errs...); err != nil {
		return exception.NewBadRequestError(err, int(exception.ErrorCodeValidationFailed), exception.ErrValidationFailed.Error())
	}
	return nil
}

func (d *DefaultClaimManager) Delete(ctx context.Context, id string) error {
	if err := d.repositories.ClaimRepository.DeleteByID(ctx, id); err != nil {
		return exception.NotFoundOrInternal(err, exception.ErrClaimNotFound)
	}
	return nil
}

// TransitionStatus moves a claim along pending → processing → approved | rejected
// and queues a status notification. The notification is best effort: once the
// new status is stored the call succeeds.
func (d *DefaultClaimManager) TransitionStatus(
	ctx context.Context,
	id string,
	req request.UpdateClaimStatusRequest,
) (*response.ClaimResponse, error) {
	c, err := d.findClaim(ctx, id)
	if err != nil {
		return nil, err
	}

	from := c.Status
	if !claim.ValidTransition(from, req.Status) {
		return nil, exception.NewBadRequestError(
			exception.ErrorWithContext(exception.ErrInvalidStatusTransition, "from", from, "to", req.Status),
			int(exception.ErrorCodeInvalidStatusTransition),
			fmt.Sprintf("Cannot change claim status from %s to %s", from, req.Status),
			map[string]any{"from": from, "allowed": claim.NextStatuses(from)},
		)
	}

	now := d.now().UTC()
	today := util.TruncateToDay(now)
	c.Status = req.Status
	switch req.Status {
	case claim.Approved:
		c.ApprovedDate = util.Ptr(today)
		c.SettlementAmount = decimal.NewNullDecimal(settlementAmount(*c, req.SettlementAmount))
	case claim.Rejected:
		c.RejectedDate = util.Ptr(today)
		c.RejectionReason = req.RejectionReason
	}

	if err := d.repositories.ClaimRepository.UpdateStatus(ctx, c, from); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, exception.NewConflictError(err, int(exception.ErrorCodeConflict), exception.ErrConflict.Error())
		}
		logging.FromContext(ctx, d.logger).Error("failed to update claim status", zap.String("claim_id", id), zap.Error(err))
		return nil, exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	logging.FromContext(ctx, d.logger).Info("claim status changed",
		zap.String("claim_id", c.ID),
		zap.String("from", from.String()),
		zap.String("to", c.Status.String()))

	d.enqueueNotification(ctx, *c, from, now)

	res := response.NewClaimResponse(*c)
	return &res, nil
}

// settlementAmount picks the explicit amount, then the estimate, then the claimed amount.
func settlementAmount(c entity.Claim, explicit *decimal.Decimal) decimal.Decimal {
	switch {
	case explicit != nil:
		return *explicit
	case c.EstimatedSettlement.Valid:
		return c.EstimatedSettlement.Decimal
	default:
		return c.Amount
	}
}

func (d *DefaultClaimManager) enqueueNotification(ctx context.Context, c entity.Claim, from claim.Status, at time.Time) {
	_, err := d.jobManager.CreateJob(ctx, CreateJobRequest{
		Type:     job.NotifyClaimStatus,
		Priority: job.PriorityNormal,
		Payload: worker.NotifyClaimStatusPayload{
			ClaimID:   c.ID,
			UserID:    c.UserID,
			PolicyID:  c.PolicyID,
			From:      from,
			To:        c.Status,
			ChangedAt: at,
		},
	})
	if err != nil {
		logging.FromContext(ctx, d.logger).Warn("failed to queue claim status notification", zap.String("claim_id", c.ID), zap.Error(err))
	}
}

// GetProgress applies the timeline catalog, step resolver and completion
// estimator to the stored claim. In-progress results only depend on type,
// status and day, so they are shared through redis.
func (d *DefaultClaimManager) GetProgress(ctx context.Context, id string, today time.Time) (*response.ProgressResponse, error) {
	c, err := d.findClaim(ctx, id)
	if err != nil {
		return nil, err
	}

	today = util.TruncateToDay(today.UTC())
	input := c.ProgressInput()

	var progress claimprogress.Progress
	if c.Status.IsTerminal() {
		progress = claimprogress.Track(input, today)
	} else {
		key := fmt.Sprintf(progressCacheKey, c.Type, c.Status, today.Format(request.DateLayout))
		err = redis.Wrap(ctx, d.res.Redis, key, &progress, d.progressCacheTTL(), func() (claimprogress.Progress, error) {
			return claimprogress.Track(input, today), nil
		})
		if err != nil {
			return nil, exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
		}
	}

	res := response.NewProgressResponse(*c, progress)
	return &res, nil
}

func (d *DefaultClaimManager) progressCacheTTL() time.Duration {
	if ttl := d.res.Config.ProgressConfig.CacheTTL; ttl > 0 {
		return ttl
	}
	return defaultProgressCacheTTL
}

func (d *DefaultClaimManager) GetTimeline(claimType claim.Type) response.TimelineResponse {
	return response.TimelineResponse{
		Type:        claimType,
		TypicalDays: claimprogress.TypicalDays(claimType),
		Steps:       claimprogress.Timeline(claimType),
	}
}

func (d *DefaultClaimManager) ListTimelines() []response.TimelineResponse {
	return collection.Map(claimprogress.TimelineTypes(), d.GetTimeline)
}

func (d *DefaultClaimManager) findClaim(ctx context.Context, id string) (*entity.Claim, error) {
	c, err := d.repositories.ClaimRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrClaimNotFound)
	}
	return c, nil
}
