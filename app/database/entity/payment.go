package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/constant/payment"
)

type Payment struct {
	bun.BaseModel `bun:"table:payments,alias:pay"`

	ID            string          `bun:"id,pk,type:varchar(64)"`
	UserID        string          `bun:"user_id,notnull"`
	PolicyID      string          `bun:"policy_id,notnull"`
	PolicyNumber  string          `bun:"policy_number"`
	PolicyName    string          `bun:"policy_name"`
	Amount        decimal.Decimal `bun:"amount,type:decimal(18,2),notnull"`
	Date          time.Time       `bun:"date,notnull"`
	Status        payment.Status  `bun:"status,notnull"`
	Method        string          `bun:"method"`
	TransactionID string          `bun:"transaction_id,notnull,unique"`
	CreatedAt     time.Time       `bun:"created_at,notnull"`
}

func (p Payment) Alias() string {
	return "pay"
}

type PaymentMethod struct {
	bun.BaseModel `bun:"table:payment_methods,alias:pm"`

	ID             string             `bun:"id,pk,type:varchar(64)"`
	UserID         string             `bun:"user_id,notnull"`
	Type           payment.MethodType `bun:"type,notnull"`
	CardType       *string            `bun:"card_type"`
	Last4          *string            `bun:"last4"`
	ExpiryMonth    *int               `bun:"expiry_month"`
	ExpiryYear     *int               `bun:"expiry_year"`
	CardholderName *string            `bun:"cardholder_name"`
	UPIID          *string            `bun:"upi_id"`
	Provider       *string            `bun:"provider"`
	IsDefault      bool               `bun:"is_default,notnull"`
	CreatedAt      time.Time          `bun:"created_at,notnull"`
	UpdatedAt      *time.Time         `bun:"updated_at"`
	DeletedAt      *time.Time         `bun:"deleted_at,soft_delete"`
}

func (p PaymentMethod) Alias() string {
	return "pm"
}

type UpcomingPayment struct {
	bun.BaseModel `bun:"table:upcoming_payments,alias:up"`

	ID             string          `bun:"id,pk,type:varchar(64)"`
	UserID         string          `bun:"user_id,notnull"`
	PolicyID       string          `bun:"policy_id,notnull"`
	PolicyNumber   string          `bun:"policy_number"`
	PolicyName     string          `bun:"policy_name"`
	Amount         decimal.Decimal `bun:"amount,type:decimal(18,2),notnull"`
	DueDate        time.Time       `bun:"due_date,notnull"`
	ReminderSent   bool            `bun:"reminder_sent,notnull"`
	ReminderSentAt *time.Time      `bun:"reminder_sent_at"`
	CreatedAt      time.Time       `bun:"created_at,notnull"`
}

func (p UpcomingPayment) Alias() string {
	return "up"
}
