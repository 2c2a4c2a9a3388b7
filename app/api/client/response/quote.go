package response

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/currency"
)

type PremiumResponse struct {
	PolicyType policy.Type     `json:"policy_type"`
	Premium    decimal.Decimal `json:"premium"`
	Currency   string          `json:"currency"`
	Formatted  string          `json:"formatted"`
}

func NewPremiumResponse(policyType policy.Type, premium decimal.Decimal) PremiumResponse {
	cur := currency.GetDefault()
	return PremiumResponse{
		PolicyType: policyType,
		Premium:    premium,
		Currency:   cur.Code,
		Formatted:  cur.Format(premium),
	}
}

type QuoteResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	PolicyType     policy.Type     `json:"policy_type"`
	Age            int             `json:"age,omitempty"`
	CoverageAmount decimal.Decimal `json:"coverage_amount"`
	Duration       int             `json:"duration,omitempty"`
	Premium        decimal.Decimal `json:"premium"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewQuoteResponse(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		UserID:         q.UserID,
		PolicyType:     q.PolicyType,
		Age:            q.Age,
		CoverageAmount: q.CoverageAmount,
		Duration:       q.Duration,
		Premium:        q.Premium,
		CreatedAt:      q.CreatedAt,
	}
}
