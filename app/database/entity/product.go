package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/constant/policy"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	ID            string          `bun:"id,pk,type:varchar(64)"`
	Type          policy.Type     `bun:"type,notnull"`
	Name          string          `bun:"name,notnull"`
	Description   string          `bun:"description,notnull"`
	Benefits      StringList      `bun:"benefits,type:jsonb"`
	StartingPrice decimal.Decimal `bun:"starting_price,type:decimal(18,2),notnull"`
	MaxCoverage   decimal.Decimal `bun:"max_coverage,type:decimal(18,2),notnull"`
	CreatedAt     time.Time       `bun:"created_at,notnull"`
}

func (p Product) Alias() string {
	return "pr"
}
