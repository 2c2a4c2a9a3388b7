// Package seed loads the demo data set shipped with the service.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/payment"
	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type Fixtures struct {
	Users            []userFixture            `yaml:"users"`
	Products         []productFixture         `yaml:"products"`
	Policies         []policyFixture          `yaml:"policies"`
	Claims           []claimFixture           `yaml:"claims"`
	Quotes           []quoteFixture           `yaml:"quotes"`
	Payments         []paymentFixture         `yaml:"payments"`
	PaymentMethods   []paymentMethodFixture   `yaml:"payment_methods"`
	UpcomingPayments []upcomingPaymentFixture `yaml:"upcoming_payments"`
}

type userFixture struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Email       string  `yaml:"email"`
	Phone       *string `yaml:"phone"`
	Address     *string `yaml:"address"`
	DateOfBirth string  `yaml:"date_of_birth"`
}

type productFixture struct {
	ID            string          `yaml:"id"`
	Type          policy.Type     `yaml:"type"`
	Name          string          `yaml:"name"`
	Description   string          `yaml:"description"`
	StartingPrice decimal.Decimal `yaml:"starting_price"`
	MaxCoverage   decimal.Decimal `yaml:"max_coverage"`
	Benefits      []string        `yaml:"benefits"`
}

type policyFixture struct {
	ID              string          `yaml:"id"`
	UserID          string          `yaml:"user_id"`
	ProductID       *string         `yaml:"product_id"`
	PolicyNumber    string          `yaml:"policy_number"`
	Name            string          `yaml:"name"`
	Type            policy.Type     `yaml:"type"`
	Status          policy.Status   `yaml:"status"`
	Premium         decimal.Decimal `yaml:"premium"`
	CoverageAmount  decimal.Decimal `yaml:"coverage_amount"`
	StartDate       string          `yaml:"start_date"`
	EndDate         string          `yaml:"end_date"`
	NextPremiumDate string          `yaml:"next_premium_date"`
	Benefits        []string        `yaml:"benefits"`
}

type claimFixture struct {
	ID                  string              `yaml:"id"`
	UserID              string              `yaml:"user_id"`
	PolicyID            string              `yaml:"policy_id"`
	Type                claim.Type          `yaml:"type"`
	Status              claim.Status        `yaml:"status"`
	Description         string              `yaml:"description"`
	Amount              decimal.Decimal     `yaml:"amount"`
	IncidentDate        string              `yaml:"incident_date"`
	FiledDate           string              `yaml:"filed_date"`
	ApprovedDate        string              `yaml:"approved_date"`
	RejectedDate        string              `yaml:"rejected_date"`
	SettlementAmount    decimal.NullDecimal `yaml:"settlement_amount"`
	EstimatedSettlement decimal.NullDecimal `yaml:"estimated_settlement"`
	RejectionReason     *string             `yaml:"rejection_reason"`
}

type quoteFixture struct {
	ID             string          `yaml:"id"`
	UserID         string          `yaml:"user_id"`
	PolicyType     policy.Type     `yaml:"policy_type"`
	Age            int             `yaml:"age"`
	CoverageAmount decimal.Decimal `yaml:"coverage_amount"`
	Duration       int             `yaml:"duration"`
	Premium        decimal.Decimal `yaml:"premium"`
}

type paymentFixture struct {
	ID            string          `yaml:"id"`
	UserID        string          `yaml:"user_id"`
	PolicyID      string          `yaml:"policy_id"`
	PolicyNumber  string          `yaml:"policy_number"`
	PolicyName    string          `yaml:"policy_name"`
	Amount        decimal.Decimal `yaml:"amount"`
	Date          string          `yaml:"date"`
	Status        payment.Status  `yaml:"status"`
	Method        string          `yaml:"method"`
	TransactionID string          `yaml:"transaction_id"`
}

type paymentMethodFixture struct {
	ID             string             `yaml:"id"`
	UserID         string             `yaml:"user_id"`
	Type           payment.MethodType `yaml:"type"`
	CardType       *string            `yaml:"card_type"`
	Last4          *string            `yaml:"last4"`
	ExpiryMonth    *int               `yaml:"expiry_month"`
	ExpiryYear     *int               `yaml:"expiry_year"`
	CardholderName *string            `yaml:"cardholder_name"`
	UPIID          *string            `yaml:"upi_id"`
	Provider       *string            `yaml:"provider"`
	IsDefault      bool               `yaml:"is_default"`
}

type upcomingPaymentFixture struct {
	ID           string          `yaml:"id"`
	UserID       string          `yaml:"user_id"`
	PolicyID     string          `yaml:"policy_id"`
	PolicyNumber string          `yaml:"policy_number"`
	PolicyName   string          `yaml:"policy_name"`
	Amount       decimal.Decimal `yaml:"amount"`
	DueInDays    int             `yaml:"due_in_days"`
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &f, nil
}

// Seed inserts the fixtures, skipping rows whose id already exists. Upcoming
// payment due dates are relative to now.
func Seed(ctx context.Context, db bun.IDB, now time.Time, logger *zap.Logger) error {
	f, err := Load()
	if err != nil {
		return err
	}
	now = now.UTC()

	users := make([]entity.User, 0, len(f.Users))
	for _, u := range f.Users {
		dob, err := parseOptionalDate(u.DateOfBirth)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.ID, err)
		}
		users = append(users, entity.User{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Phone:       u.Phone,
			Address:     u.Address,
			DateOfBirth: dob,
			CreatedAt:   now,
		})
	}

	products := make([]entity.Product, 0, len(f.Products))
	for _, p := range f.Products {
		products = append(products, entity.Product{
			ID:            p.ID,
			Type:          p.Type,
			Name:          p.Name,
			Description:   p.Description,
			Benefits:      p.Benefits,
			StartingPrice: p.StartingPrice,
			MaxCoverage:   p.MaxCoverage,
			CreatedAt:     now,
		})
	}

	policies := make([]entity.Policy, 0, len(f.Policies))
	for _, p := range f.Policies {
		start, err := parseDate(p.StartDate)
		if err != nil {
			return fmt.Errorf("policy %s: %w", p.ID, err)
		}
		end, err := parseOptionalDate(p.EndDate)
		if err != nil {
			return fmt.Errorf("policy %s: %w", p.ID, err)
		}
		next, err := parseOptionalDate(p.NextPremiumDate)
		if err != nil {
			return fmt.Errorf("policy %s: %w", p.ID, err)
		}
		policies = append(policies, entity.Policy{
			ID:              p.ID,
			UserID:          p.UserID,
			ProductID:       p.ProductID,
			PolicyNumber:    p.PolicyNumber,
			Name:            p.Name,
			Type:            p.Type,
			Status:          p.Status,
			Premium:         p.Premium,
			CoverageAmount:  p.CoverageAmount,
			StartDate:       start,
			EndDate:         end,
			NextPremiumDate: next,
			Benefits:        p.Benefits,
			CreatedAt:       now,
		})
	}

	claims := make([]entity.Claim, 0, len(f.Claims))
	for _, c := range f.Claims {
		incident, err := parseDate(c.IncidentDate)
		if err != nil {
			return fmt.Errorf("claim %s: %w", c.ID, err)
		}
		filed, err := parseDate(c.FiledDate)
		if err != nil {
			return fmt.Errorf("claim %s: %w", c.ID, err)
		}
		approved, err := parseOptionalDate(c.ApprovedDate)
		if err != nil {
			return fmt.Errorf("claim %s: %w", c.ID, err)
		}
		rejected, err := parseOptionalDate(c.RejectedDate)
		if err != nil {
			return fmt.Errorf("claim %s: %w", c.ID, err)
		}
		claims = append(claims, entity.Claim{
			ID:                  c.ID,
			UserID:              c.UserID,
			PolicyID:            c.PolicyID,
			Type:                c.Type,
			Status:              c.Status,
			Description:         c.Description,
			Amount:              c.Amount,
			IncidentDate:        incident,
			FiledDate:           filed,
			ApprovedDate:        approved,
			RejectedDate:        rejected,
			SettlementAmount:    c.SettlementAmount,
			EstimatedSettlement: c.EstimatedSettlement,
			RejectionReason:     c.RejectionReason,
			CreatedAt:           now,
		})
	}

	quotes := make([]entity.Quote, 0, len(f.Quotes))
	for _, q := range f.Quotes {
		quotes = append(quotes, entity.Quote{
			ID:             q.ID,
			UserID:         q.UserID,
			PolicyType:     q.PolicyType,
			Age:            q.Age,
			CoverageAmount: q.CoverageAmount,
			Duration:       q.Duration,
			Premium:        q.Premium,
			CreatedAt:      now,
		})
	}

	payments := make([]entity.Payment, 0, len(f.Payments))
	for _, p := range f.Payments {
		date, err := parseDate(p.Date)
		if err != nil {
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
		payments = append(payments, entity.Payment{
			ID:            p.ID,
			UserID:        p.UserID,
			PolicyID:      p.PolicyID,
			PolicyNumber:  p.PolicyNumber,
			PolicyName:    p.PolicyName,
			Amount:        p.Amount,
			Date:          date,
			Status:        p.Status,
			Method:        p.Method,
			TransactionID: p.TransactionID,
			CreatedAt:     now,
		})
	}

	methods := make([]entity.PaymentMethod, 0, len(f.PaymentMethods))
	for _, m := range f.PaymentMethods {
		methods = append(methods, entity.PaymentMethod{
			ID:             m.ID,
			UserID:         m.UserID,
			Type:           m.Type,
			CardType:       m.CardType,
			Last4:          m.Last4,
			ExpiryMonth:    m.ExpiryMonth,
			ExpiryYear:     m.ExpiryYear,
			CardholderName: m.CardholderName,
			UPIID:          m.UPIID,
			Provider:       m.Provider,
			IsDefault:      m.IsDefault,
			CreatedAt:      now,
		})
	}

	today := now.Truncate(24 * time.Hour)
	upcoming := make([]entity.UpcomingPayment, 0, len(f.UpcomingPayments))
	for _, p := range f.UpcomingPayments {
		upcoming = append(upcoming, entity.UpcomingPayment{
			ID:           p.ID,
			UserID:       p.UserID,
			PolicyID:     p.PolicyID,
			PolicyNumber: p.PolicyNumber,
			PolicyName:   p.PolicyName,
			Amount:       p.Amount,
			DueDate:      today.AddDate(0, 0, p.DueInDays),
			CreatedAt:    now,
		})
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, rows := range []any{&users, &products, &policies, &claims, &quotes, &payments, &methods, &upcoming} {
			if _, err := tx.NewInsert().Model(rows).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
				return fmt.Errorf("seeding %T: %w", rows, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("seeded database",
		zap.Int("users", len(users)),
		zap.Int("products", len(products)),
		zap.Int("policies", len(policies)),
		zap.Int("claims", len(claims)),
	)
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
