package worker

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/claim"
)

// ReviewClaimPayload starts the review of a pending claim.
type ReviewClaimPayload struct {
	ClaimID string `json:"claim_id"`
}

// SettleClaimPayload closes a claim under review.
type SettleClaimPayload struct {
	ClaimID          string           `json:"claim_id"`
	Status           claim.Status     `json:"status"`
	SettlementAmount *decimal.Decimal `json:"settlement_amount,omitempty"`
	RejectionReason  *string          `json:"rejection_reason,omitempty"`
}

// NotifyClaimStatusPayload is posted to the status webhook.
type NotifyClaimStatusPayload struct {
	ClaimID   string       `json:"claim_id"`
	UserID    string       `json:"user_id"`
	PolicyID  string       `json:"policy_id"`
	From      claim.Status `json:"from"`
	To        claim.Status `json:"to"`
	ChangedAt time.Time    `json:"changed_at"`
}
