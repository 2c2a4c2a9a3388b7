package request

import (
	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/policy"
)

type CalculatePremiumRequest struct {
	PolicyType     policy.Type     `json:"policy_type" validate:"required,oneof=health auto travel life home"`
	Age            int             `json:"age" validate:"omitempty,min=1,max=120"`
	CoverageAmount decimal.Decimal `json:"coverage_amount" validate:"gte=0"`
	Duration       int             `json:"duration" validate:"omitempty,min=1,max=360"`
}

type CreateQuoteRequest struct {
	CalculatePremiumRequest
}

type UpdateQuoteRequest struct {
	CalculatePremiumRequest
}

type ListQuotesRequest struct {
	PaginationRequest
}
