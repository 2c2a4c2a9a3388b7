package response

import (
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/database/constant/payment"
	"backend/insurance-platform/app/database/entity"
)

type PaymentResponse struct {
	ID            string          `json:"id"`
	PolicyID      string          `json:"policy_id"`
	PolicyNumber  string          `json:"policy_number"`
	PolicyName    string          `json:"policy_name"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Status        payment.Status  `json:"status"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transaction_id"`
}

func NewPaymentResponse(p entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		PolicyID:      p.PolicyID,
		PolicyNumber:  p.PolicyNumber,
		PolicyName:    p.PolicyName,
		Amount:        p.Amount,
		Date:          p.Date,
		Status:        p.Status,
		Method:        p.Method,
		TransactionID: p.TransactionID,
	}
}

type PaymentMethodResponse struct {
	ID             string             `json:"id"`
	Type           payment.MethodType `json:"type"`
	CardType       *string            `json:"card_type,omitempty"`
	Last4          *string            `json:"last4,omitempty"`
	ExpiryMonth    *int               `json:"expiry_month,omitempty"`
	ExpiryYear     *int               `json:"expiry_year,omitempty"`
	CardholderName *string            `json:"cardholder_name,omitempty"`
	UPIID          *string            `json:"upi_id,omitempty"`
	Provider       *string            `json:"provider,omitempty"`
	IsDefault      bool               `json:"is_default"`
}

func NewPaymentMethodResponse(m entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:             m.ID,
		Type:           m.Type,
		CardType:       m.CardType,
		Last4:          m.Last4,
		ExpiryMonth:    m.ExpiryMonth,
		ExpiryYear:     m.ExpiryYear,
		CardholderName: m.CardholderName,
		UPIID:          m.UPIID,
		Provider:       m.Provider,
		IsDefault:      m.IsDefault,
	}
}

type UpcomingPaymentResponse struct {
	ID           string          `json:"id"`
	PolicyID     string          `json:"policy_id"`
	PolicyNumber string          `json:"policy_number"`
	PolicyName   string          `json:"policy_name"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	ReminderSent bool            `json:"reminder_sent"`
}

func NewUpcomingPaymentResponse(p entity.UpcomingPayment) UpcomingPaymentResponse {
	return UpcomingPaymentResponse{
		ID:           p.ID,
		PolicyID:     p.PolicyID,
		PolicyNumber: p.PolicyNumber,
		PolicyName:   p.PolicyName,
		Amount:       p.Amount,
		DueDate:      formatDate(p.DueDate),
		ReminderSent: p.ReminderSent,
	}
}
