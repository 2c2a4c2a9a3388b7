package request

type AddToComparisonRequest struct {
	ProductID string `json:"product_id" validate:"required,notblank"`
}
