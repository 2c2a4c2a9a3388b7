package response

import (
	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
)

type ProductResponse struct {
	ID            string          `json:"id"`
	Type          policy.Type     `json:"type"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Benefits      []string        `json:"benefits"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	MaxCoverage   decimal.Decimal `json:"max_coverage"`
}

func NewProductResponse(p entity.Product) ProductResponse {
	benefits := []string(p.Benefits)
	if benefits == nil {
		benefits = []string{}
	}
	return ProductResponse{
		ID:            p.ID,
		Type:          p.Type,
		Name:          p.Name,
		Description:   p.Description,
		Benefits:      benefits,
		StartingPrice: p.StartingPrice,
		MaxCoverage:   p.MaxCoverage,
	}
}

type ComparisonResponse struct {
	ProductIDs []string          `json:"product_ids"`
	Products   []ProductResponse `json:"products"`
	Max        int               `json:"max"`
}
