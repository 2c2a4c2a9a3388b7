package response

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
)

type PolicyResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ProductID       *string         `json:"product_id,omitempty"`
	PolicyNumber    string          `json:"policy_number"`
	Name            string          `json:"name"`
	Type            policy.Type     `json:"type"`
	Status          policy.Status   `json:"status"`
	Premium         decimal.Decimal `json:"premium"`
	CoverageAmount  decimal.Decimal `json:"coverage_amount"`
	StartDate       string          `json:"start_date"`
	EndDate         *string         `json:"end_date,omitempty"`
	NextPremiumDate *string         `json:"next_premium_date,omitempty"`
	Benefits        []string        `json:"benefits"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewPolicyResponse(p entity.Policy) PolicyResponse {
	benefits := []string(p.Benefits)
	if benefits == nil {
		benefits = []string{}
	}
	return PolicyResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		ProductID:       p.ProductID,
		PolicyNumber:    p.PolicyNumber,
		Name:            p.Name,
		Type:            p.Type,
		Status:          p.Status,
		Premium:         p.Premium,
		CoverageAmount:  p.CoverageAmount,
		StartDate:       formatDate(p.StartDate),
		EndDate:         formatDatePtr(p.EndDate),
		NextPremiumDate: formatDatePtr(p.NextPremiumDate),
		Benefits:        benefits,
		CreatedAt:       p.CreatedAt,
	}
}
