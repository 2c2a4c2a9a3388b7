package request

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/claim"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type CreateClaimRequest struct {
	PolicyID     string          `json:"policy_id" validate:"required,notblank"`
	Type         claim.Type      `json:"type" validate:"required,oneof=medical accident theft baggage other"`
	Description  string          `json:"description" validate:"required,notblank,min=20,max=2000"`
	Amount       decimal.Decimal `json:"amount" validate:"gt=0"`
	IncidentDate string          `json:"incident_date" validate:"required,incident_date"`
}

// ParsedIncidentDate returns the incident day at UTC midnight.
func (r CreateClaimRequest) ParsedIncidentDate() (time.Time, error) {
	return time.Parse(DateLayout, r.IncidentDate)
}

type UpdateClaimRequest struct {
	Description         *string          `json:"description" validate:"omitempty,notblank,min=20,max=2000"`
	Amount              *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	EstimatedSettlement *decimal.Decimal `json:"estimated_settlement" validate:"omitempty,gte=0"`
}

type UpdateClaimStatusRequest struct {
	Status           claim.Status     `json:"status" validate:"required,oneof=processing approved rejected"`
	SettlementAmount *decimal.Decimal `json:"settlement_amount" validate:"omitempty,gte=0"`
	RejectionReason  *string          `json:"rejection_reason" validate:"omitempty,max=500"`
}

type ListClaimsRequest struct {
	PaginationRequest
	PolicyID string       `query:"policy_id"`
	Status   claim.Status `query:"status" validate:"omitempty,oneof=pending processing approved rejected"`
	Type     claim.Type   `query:"type" validate:"omitempty,oneof=medical accident theft baggage other"`
}

type ClaimProgressRequest struct {
	// Optional reference day for the estimate, defaults to today
	Today string `query:"today" validate:"omitempty,datetime=2006-01-02"`
}
