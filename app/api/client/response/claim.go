package response

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/claimprogress"
)

type ClaimResponse struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	PolicyID            string           `json:"policy_id"`
	Type                claim.Type       `json:"type"`
	Status              claim.Status     `json:"status"`
	Description         string           `json:"description"`
	Amount              decimal.Decimal  `json:"amount"`
	IncidentDate        string           `json:"incident_date"`
	FiledDate           string           `json:"filed_date"`
	ApprovedDate        *string          `json:"approved_date,omitempty"`
	RejectedDate        *string          `json:"rejected_date,omitempty"`
	SettlementAmount    *decimal.Decimal `json:"settlement_amount,omitempty"`
	EstimatedSettlement *decimal.Decimal `json:"estimated_settlement,omitempty"`
	RejectionReason     *string          `json:"rejection_reason,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           *time.Time       `json:"updated_at,omitempty"`
}

func NewClaimResponse(c entity.Claim) ClaimResponse {
	return ClaimResponse{
		ID:                  c.ID,
		UserID:              c.UserID,
		PolicyID:            c.PolicyID,
		Type:                c.Type,
		Status:              c.Status,
		Description:         c.Description,
		Amount:              c.Amount,
		IncidentDate:        formatDate(c.IncidentDate),
		FiledDate:           formatDate(c.FiledDate),
		ApprovedDate:        formatDatePtr(c.ApprovedDate),
		RejectedDate:        formatDatePtr(c.RejectedDate),
		SettlementAmount:    nullDecimal(c.SettlementAmount),
		EstimatedSettlement: nullDecimal(c.EstimatedSettlement),
		RejectionReason:     c.RejectionReason,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

type EstimateResponse struct {
	Completed     bool    `json:"completed"`
	CompletedDate *string `json:"completed_date,omitempty"`
	EstimatedDays *int    `json:"estimated_days,omitempty"`
	EstimatedDate *string `json:"estimated_date,omitempty"`
	Message       string  `json:"message"`
}

func NewEstimateResponse(e claimprogress.Estimate) EstimateResponse {
	return EstimateResponse{
		Completed:     e.Completed,
		CompletedDate: formatDatePtr(e.CompletedDate),
		EstimatedDays: e.EstimatedDays,
		EstimatedDate: formatDatePtr(e.EstimatedDate),
		Message:       e.Message,
	}
}

type ProgressStepResponse struct {
	Index       int                     `json:"index"`
	Key         string                  `json:"key"`
	Label       string                  `json:"label"`
	Description string                  `json:"description"`
	State       claimprogress.StepState `json:"state"`
}

type ProgressResponse struct {
	ClaimID     string                 `json:"claim_id"`
	Type        claim.Type             `json:"type"`
	Status      claim.Status           `json:"status"`
	CurrentStep int                    `json:"current_step"`
	TotalSteps  int                    `json:"total_steps"`
	Percentage  float64                `json:"percentage"`
	Steps       []ProgressStepResponse `json:"steps"`
	Estimate    EstimateResponse       `json:"estimate"`
}

func NewProgressResponse(c entity.Claim, p claimprogress.Progress) ProgressResponse {
	steps := make([]ProgressStepResponse, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = ProgressStepResponse{
			Index:       i,
			Key:         s.Key,
			Label:       s.Label,
			Description: s.Description,
			State:       s.State,
		}
	}
	return ProgressResponse{
		ClaimID:     c.ID,
		Type:        c.Type,
		Status:      c.Status,
		CurrentStep: p.CurrentStep,
		TotalSteps:  p.TotalSteps,
		Percentage:  p.Percentage,
		Steps:       steps,
		Estimate:    NewEstimateResponse(p.Estimate),
	}
}

type TimelineResponse struct {
	Type        claim.Type           `json:"type"`
	TypicalDays int                  `json:"typical_days"`
	Steps       []claimprogress.Step `json:"steps"`
}
