package request

import (
	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/payment"
)

type ProcessPaymentRequest struct {
	PolicyID string          `json:"policy_id" validate:"required,notblank"`
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
	Method   string          `json:"method" validate:"required,notblank,max=50"`
}

type PaymentMethodRequest struct {
	Type           payment.MethodType `json:"type" validate:"required,oneof=card upi netbanking"`
	CardType       *string            `json:"card_type" validate:"omitempty,max=20"`
	Last4          *string            `json:"last4" validate:"omitempty,len=4,numeric"`
	ExpiryMonth    *int               `json:"expiry_month" validate:"omitempty,min=1,max=12"`
	ExpiryYear     *int               `json:"expiry_year" validate:"omitempty,min=2000,max=2100"`
	CardholderName *string            `json:"cardholder_name" validate:"omitempty,max=100"`
	UPIID          *string            `json:"upi_id" validate:"omitempty,max=100"`
	Provider       *string            `json:"provider" validate:"omitempty,max=100"`
	IsDefault      bool               `json:"is_default"`
}
