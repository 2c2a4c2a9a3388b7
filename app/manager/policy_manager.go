package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	queryUtil "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/util"
	"backend/insurance-platform/app/pkg/util/collection"
)

const (
	policyNumberKey      = "policy_number:%d"
	policyNumberAttempts = 3
)

var policySortColumns = []string{"created_at", "start_date", "premium", "name"}

type PolicyManager interface {
	List(ctx context.Context, userID string, req request.ListPoliciesRequest) (response.PaginationResponse[response.PolicyResponse], error)
	GetByID(ctx context.Context, id string) (*response.PolicyResponse, error)
	Create(ctx context.Context, userID string, req request.CreatePolicyRequest) (*response.PolicyResponse, error)
	Update(ctx context.Context, id string, req request.UpdatePolicyRequest) (*response.PolicyResponse, error)
	Delete(ctx context.Context, id string) error
}

type DefaultPolicyManager struct {
	res          runtime.Resource
	logger       *zap.Logger
	repositories *repository.Repositories
	now          func() time.Time
}

func NewPolicyManager(res runtime.Resource, repositories *repository.Repositories, now func() time.Time) PolicyManager {
	return &DefaultPolicyManager{
		res:          res,
		logger:       res.Logger.With(zap.String("component", "policy_manager")),
		repositories: repositories,
		now:          now,
	}
}

func (d *DefaultPolicyManager) List(
	ctx context.Context,
	userID string,
	req request.ListPoliciesRequest,
) (response.PaginationResponse[response.PolicyResponse], error) {
	policies, total, err := d.repositories.PolicyRepository.FindMany(ctx, repository.PolicyFilter{
		UserID: userID,
		Type:   req.Type,
		Status: req.Status,
	}, req.ToPage(policySortColumns...))
	if err != nil {
		d.logger.Error("failed to list policies", zap.Error(err))
		return response.PaginationResponse[response.PolicyResponse]{}, exception.NewInternalServerError(
			err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	req.LoadDefaultValues()
	return response.ToPaginationResponse(
		collection.Map(policies, response.NewPolicyResponse),
		int64(total), req.Page, req.Size,
	), nil
}

func (d *DefaultPolicyManager) GetByID(ctx context.Context, id string) (*response.PolicyResponse, error) {
	p, err := d.repositories.PolicyRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}
	res := response.NewPolicyResponse(*p)
	return &res, nil
}

func (d *DefaultPolicyManager) Create(ctx context.Context, userID string, req request.CreatePolicyRequest) (*response.PolicyResponse, error) {
	if req.ProductID != nil {
		if _, err := d.repositories.ProductRepository.FindByID(ctx, *req.ProductID); err != nil {
			return nil, exception.NotFoundOrInternal(err, exception.ErrProductNotFound)
		}
	}

	now := d.now().UTC()
	start := util.TruncateToDay(now)
	renewal := start.AddDate(1, 0, 0)

	endDate := &renewal
	if req.EndDate != nil {
		parsed, err := time.Parse(request.DateLayout, *req.EndDate)
		if err != nil {
			return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "end_date must use YYYY-MM-DD")
		}
		if !parsed.After(start) {
			return nil, exception.NewBadRequestError(nil, int(exception.ErrorCodeInvalidParameter), "end_date must be after the start date")
		}
		endDate = &parsed
	}

	p := &entity.Policy{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProductID:       req.ProductID,
		Name:            req.Name,
		Type:            req.Type,
		Status:          policy.Active,
		Premium:         req.Premium,
		CoverageAmount:  req.CoverageAmount,
		StartDate:       start,
		EndDate:         endDate,
		NextPremiumDate: &renewal,
		Benefits:        entity.StringList(req.Benefits),
		CreatedAt:       now,
	}

	var lastErr error
	for attempt := 0; attempt < policyNumberAttempts; attempt++ {
		number, err := d.nextPolicyNumber(ctx, start.Year())
		if err != nil {
			d.logger.Error("failed to generate policy number", zap.Error(err))
			return nil, exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
		}
		p.PolicyNumber = number

		_, lastErr = d.repositories.PolicyRepository.Insert(ctx, p)
		if lastErr == nil {
			d.logger.Info("policy created", zap.String("policy_id", p.ID), zap.String("policy_number", p.PolicyNumber))
			res := response.NewPolicyResponse(*p)
			return &res, nil
		}
		if !queryUtil.IsUniqueViolation(lastErr) {
			break
		}
		d.logger.Warn("policy number taken, retrying", zap.String("policy_number", number))
	}

	d.logger.Error("failed to create policy", zap.Error(lastErr))
	return nil, exception.NewInternalServerError(lastErr, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
}

// nextPolicyNumber hands out POL-<year>-<seq> from a per-year redis counter.
func (d *DefaultPolicyManager) nextPolicyNumber(ctx context.Context, year int) (string, error) {
	seq, err := d.res.Redis.Increment(ctx, fmt.Sprintf(policyNumberKey, year), 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("POL-%d-%03d", year, seq), nil
}

func (d *DefaultPolicyManager) Update(ctx context.Context, id string, req request.UpdatePolicyRequest) (*response.PolicyResponse, error) {
	p, err := d.repositories.PolicyRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Premium != nil {
		p.Premium = *req.Premium
	}
	if req.CoverageAmount != nil {
		p.CoverageAmount = *req.CoverageAmount
	}
	if req.Benefits != nil {
		p.Benefits = entity.StringList(req.Benefits)
	}
	if p.EndDate, err = parseDateOr(req.EndDate, p.EndDate); err != nil {
		return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "end_date must use YYYY-MM-DD")
	}
	if p.NextPremiumDate, err = parseDateOr(req.NextPremiumDate, p.NextPremiumDate); err != nil {
		return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "next_premium_date must use YYYY-MM-DD")
	}

	if err := d.repositories.PolicyRepository.Update(ctx, p); err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}

	res := response.NewPolicyResponse(*p)
	return &res, nil
}

func (d *DefaultPolicyManager) Delete(ctx context.Context, id string) error {
	if err := d.repositories.PolicyRepository.DeleteByID(ctx, id); err != nil {
		return exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}
	return nil
}

func parseDateOr(value *string, current *time.Time) (*time.Time, error) {
	if value == nil {
		return current, nil
	}
	parsed, err := time.Parse(request.DateLayout, *value)
	if err != nil {
		return current, err
	}
	return &parsed, nil
}
