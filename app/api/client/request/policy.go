package request

import (
	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/policy"
)

type CreatePolicyRequest struct {
	ProductID      *string         `json:"product_id"`
	Name           string          `json:"name" validate:"required,notblank,max=150"`
	Type           policy.Type     `json:"type" validate:"required,oneof=health auto travel life home"`
	Premium        decimal.Decimal `json:"premium" validate:"gt=0"`
	CoverageAmount decimal.Decimal `json:"coverage_amount" validate:"gt=0"`
	EndDate        *string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Benefits       []string        `json:"benefits" validate:"omitempty,dive,notblank"`
}

type UpdatePolicyRequest struct {
	Name            *string          `json:"name" validate:"omitempty,notblank,max=150"`
	Status          *policy.Status   `json:"status" validate:"omitempty,oneof=active expired cancelled"`
	Premium         *decimal.Decimal `json:"premium" validate:"omitempty,gt=0"`
	CoverageAmount  *decimal.Decimal `json:"coverage_amount" validate:"omitempty,gt=0"`
	EndDate         *string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	NextPremiumDate *string          `json:"next_premium_date" validate:"omitempty,datetime=2006-01-02"`
	Benefits        []string         `json:"benefits" validate:"omitempty,dive,notblank"`
}

type ListPoliciesRequest struct {
	PaginationRequest
	Type   policy.Type   `query:"type" validate:"omitempty,oneof=health auto travel life home"`
	Status policy.Status `query:"status" validate:"omitempty,oneof=active expired cancelled"`
}
