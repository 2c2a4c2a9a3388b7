package manager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/util/collection"
)

var (
	basePremiums = map[policy.Type]decimal.Decimal{
		policy.Health: decimal.NewFromInt(5000),
		policy.Auto:   decimal.NewFromInt(3000),
		policy.Travel: decimal.NewFromInt(500),
		policy.Life:   decimal.NewFromInt(8000),
		policy.Home:   decimal.NewFromInt(4000),
	}
	defaultBasePremium = decimal.NewFromInt(3000)

	// Coverage is priced per 100k of sum insured
	coverageUnit  = decimal.NewFromInt(100000)
	monthsPerYear = decimal.NewFromInt(12)
	seniorFactor  = decimal.NewFromFloat(1.5)
	midAgeFactor  = decimal.NewFromFloat(1.2)

	quoteSortColumns = []string{"created_at", "premium"}
)

// CalculatePremium prices a quote. Zero age, coverage or duration means the
// factor was not given and is skipped. The result is rounded to whole units.
func CalculatePremium(policyType policy.Type, age int, coverageAmount decimal.Decimal, duration int) decimal.Decimal {
	premium, ok := basePremiums[policyType]
	if !ok {
		premium = defaultBasePremium
	}

	switch {
	case age > 50:
		premium = premium.Mul(seniorFactor)
	case age > 30:
		premium = premium.Mul(midAgeFactor)
	}

	if coverageAmount.IsPositive() {
		premium = premium.Mul(coverageAmount).Div(coverageUnit)
	}

	if duration > 0 {
		premium = premium.Mul(decimal.NewFromInt(int64(duration))).Div(monthsPerYear)
	}

	return premium.Round(0)
}

type QuoteManager interface {
	Calculate(req request.CalculatePremiumRequest) response.PremiumResponse
	List(ctx context.Context, userID string, req request.ListQuotesRequest) (response.PaginationResponse[response.QuoteResponse], error)
	GetByID(ctx context.Context, id string) (*response.QuoteResponse, error)
	Create(ctx context.Context, userID string, req request.CreateQuoteRequest) (*response.QuoteResponse, error)
	Update(ctx context.Context, id string, req request.UpdateQuoteRequest) (*response.QuoteResponse, error)
	Delete(ctx context.Context, id string) error
}

type DefaultQuoteManager struct {
	logger       *zap.Logger
	repositories *repository.Repositories
	now          func() time.Time
}

func NewQuoteManager(res runtime.Resource, repositories *repository.Repositories, now func() time.Time) QuoteManager {
	return &DefaultQuoteManager{
		logger:       res.Logger.With(zap.String("component", "quote_manager")),
		repositories: repositories,
		now:          now,
	}
}

func (d *DefaultQuoteManager) Calculate(req request.CalculatePremiumRequest) response.PremiumResponse {
	return response.NewPremiumResponse(req.PolicyType, premiumFor(req))
}

func premiumFor(req request.CalculatePremiumRequest) decimal.Decimal {
	return CalculatePremium(req.PolicyType, req.Age, req.CoverageAmount, req.Duration)
}

func (d *DefaultQuoteManager) List(
	ctx context.Context,
	userID string,
	req request.ListQuotesRequest,
) (response.PaginationResponse[response.QuoteResponse], error) {
	quotes, total, err := d.repositories.QuoteRepository.FindMany(ctx, repository.QuoteFilter{UserID: userID}, req.ToPage(quoteSortColumns...))
	if err != nil {
		d.logger.Error("failed to list quotes", zap.Error(err))
		return response.PaginationResponse[response.QuoteResponse]{}, exception.NewInternalServerError(
			err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	req.LoadDefaultValues()
	return response.ToPaginationResponse(
		collection.Map(quotes, response.NewQuoteResponse),
		int64(total), req.Page, req.Size,
	), nil
}

func (d *DefaultQuoteManager) GetByID(ctx context.Context, id string) (*response.QuoteResponse, error) {
	q, err := d.repositories.QuoteRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrQuoteNotFound)
	}
	res := response.NewQuoteResponse(*q)
	return &res, nil
}

func (d *DefaultQuoteManager) Create(ctx context.Context, userID string, req request.CreateQuoteRequest) (*response.QuoteResponse, error) {
	q := &entity.Quote{
		ID:             uuid.NewString(),
		UserID:         userID,
		PolicyType:     req.PolicyType,
		Age:            req.Age,
		CoverageAmount: req.CoverageAmount,
		Duration:       req.Duration,
		Premium:        premiumFor(req.CalculatePremiumRequest),
		CreatedAt:      d.now().UTC(),
	}
	if _, err := d.repositories.QuoteRepository.Insert(ctx, q); err != nil {
		d.logger.Error("failed to create quote", zap.Error(err))
		return nil, exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	res := response.NewQuoteResponse(*q)
	return &res, nil
}

func (d *DefaultQuoteManager) Update(ctx context.Context, id string, req request.UpdateQuoteRequest) (*response.QuoteResponse, error) {
	q, err := d.repositories.QuoteRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrQuoteNotFound)
	}

	q.PolicyType = req.PolicyType
	q.Age = req.Age
	q.CoverageAmount = req.CoverageAmount
	q.Duration = req.Duration
	q.Premium = premiumFor(req.CalculatePremiumRequest)

	if err := d.repositories.QuoteRepository.Update(ctx, q); err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrQuoteNotFound)
	}

	res := response.NewQuoteResponse(*q)
	return &res, nil
}

func (d *DefaultQuoteManager) Delete(ctx context.Context, id string) error {
	if err := d.repositories.QuoteRepository.DeleteByID(ctx, id); err != nil {
		return exception.NotFoundOrInternal(err, exception.ErrQuoteNotFound)
	}
	return nil
}
