package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/constant/policy"
)

type Quote struct {
	bun.BaseModel `bun:"table:quotes,alias:q"`

	ID             string          `bun:"id,pk,type:varchar(64)"`
	UserID         string          `bun:"user_id,notnull"`
	PolicyType     policy.Type     `bun:"policy_type,notnull"`
	Age            int             `bun:"age"`
	CoverageAmount decimal.Decimal `bun:"coverage_amount,type:decimal(18,2)"`
	Duration       int             `bun:"duration"`
	Premium        decimal.Decimal `bun:"premium,type:decimal(18,2),notnull"`
	CreatedAt      time.Time       `bun:"created_at,notnull"`
	UpdatedAt      *time.Time      `bun:"updated_at"`
	DeletedAt      *time.Time      `bun:"deleted_at,soft_delete"`
}

func (q Quote) Alias() string {
	return "q"
}
