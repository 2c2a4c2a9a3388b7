package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"
)

type Claim struct {
	bun.BaseModel `bun:"table:claims,alias:c"`

	ID                  string              `bun:"id,pk,type:varchar(64)"`
	UserID              string              `bun:"user_id,notnull"`
	PolicyID            string              `bun:"policy_id,notnull"`
	Type                claim.Type          `bun:"type,notnull"`
	Status              claim.Status        `bun:"status,notnull,default:'pending'"`
	Description         string              `bun:"description,notnull"`
	Amount              decimal.Decimal     `bun:"amount,type:decimal(18,2),notnull"`
	IncidentDate        time.Time           `bun:"incident_date,notnull"`
	FiledDate           time.Time           `bun:"filed_date,notnull"`
	ApprovedDate        *time.Time          `bun:"approved_date"`
	RejectedDate        *time.Time          `bun:"rejected_date"`
	SettlementAmount    decimal.NullDecimal `bun:"settlement_amount,type:decimal(18,2)"`
	EstimatedSettlement decimal.NullDecimal `bun:"estimated_settlement,type:decimal(18,2)"`
	RejectionReason     *string             `bun:"rejection_reason"`
	CreatedAt           time.Time           `bun:"created_at,notnull"`
	UpdatedAt           *time.Time          `bun:"updated_at"`
	DeletedAt           *time.Time          `bun:"deleted_at,soft_delete"`
}

func (c Claim) Alias() string {
	return "c"
}

// ProgressInput returns the fields the progress estimator works on.
func (c Claim) ProgressInput() claimprogress.Claim {
	return claimprogress.Claim{
		Type:         c.Type,
		Status:       c.Status,
		FiledDate:    c.FiledDate,
		ApprovedDate: c.ApprovedDate,
		RejectedDate: c.RejectedDate,
	}
}
