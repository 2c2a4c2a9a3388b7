package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/constant/policy"
)

type Policy struct {
	bun.BaseModel `bun:"table:policies,alias:p"`

	ID              string          `bun:"id,pk,type:varchar(64)"`
	UserID          string          `bun:"user_id,notnull"`
	ProductID       *string         `bun:"product_id"`
	PolicyNumber    string          `bun:"policy_number,notnull,unique"`
	Name            string          `bun:"name,notnull"`
	Type            policy.Type     `bun:"type,notnull"`
	Status          policy.Status   `bun:"status,notnull,default:'active'"`
	Premium         decimal.Decimal `bun:"premium,type:decimal(18,2),notnull"`
	CoverageAmount  decimal.Decimal `bun:"coverage_amount,type:decimal(18,2),notnull"`
	StartDate       time.Time       `bun:"start_date,notnull"`
	EndDate         *time.Time      `bun:"end_date"`
	NextPremiumDate *time.Time      `bun:"next_premium_date"`
	Benefits        StringList      `bun:"benefits,type:jsonb"`
	CreatedAt       time.Time       `bun:"created_at,notnull"`
	UpdatedAt       *time.Time      `bun:"updated_at"`
	DeletedAt       *time.Time      `bun:"deleted_at,soft_delete"`
}

func (p Policy) Alias() string {
	return "p"
}
