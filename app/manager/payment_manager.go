package manager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/payment"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/util/collection"
)

const (
	// Upcoming payments are listed for this many days ahead.
	upcomingWindow = 30 * 24 * time.Hour

	reminderBatchSize = 100
)

type PaymentManager interface {
	History(ctx context.Context, userID string) ([]response.PaymentResponse, error)
	Methods(ctx context.Context, userID string) ([]response.PaymentMethodResponse, error)
	AddMethod(ctx context.Context, userID string, req request.PaymentMethodRequest) (*response.PaymentMethodResponse, error)
	UpdateMethod(ctx context.Context, userID, id string, req request.PaymentMethodRequest) (*response.PaymentMethodResponse, error)
	DeleteMethod(ctx context.Context, userID, id string) error
	ProcessPayment(ctx context.Context, userID string, req request.ProcessPaymentRequest) (*response.PaymentResponse, error)
	Upcoming(ctx context.Context, userID string) ([]response.UpcomingPaymentResponse, error)
	SendDueReminders(ctx context.Context, window time.Duration) (int, error)
}

type DefaultPaymentManager struct {
	logger       *zap.Logger
	repositories *repository.Repositories
	notifier     notifier.Notifier
	now          func() time.Time
}

func NewPaymentManager(res runtime.Resource, repositories *repository.Repositories, now func() time.Time) PaymentManager {
	logger := res.Logger.With(zap.String("component", "payment_manager"))
	n := res.Clients.Notifier
	if n == nil {
		n = notifier.NewNotifier(config.NotifierConfig{}, nil, logger)
	}
	return &DefaultPaymentManager{
		logger:       logger,
		repositories: repositories,
		notifier:     n,
		now:          now,
	}
}

func (d *DefaultPaymentManager) History(ctx context.Context, userID string) ([]response.PaymentResponse, error) {
	payments, err := d.repositories.PaymentRepository.FindHistory(ctx, userID)
	if err != nil {
		return nil, d.internal("failed to load payment history", err)
	}
	return collection.Map(payments, response.NewPaymentResponse), nil
}

func (d *DefaultPaymentManager) Methods(ctx context.Context, userID string) ([]response.PaymentMethodResponse, error) {
	methods, err := d.repositories.PaymentMethodRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, d.internal("failed to load payment methods", err)
	}
	return collection.Map(methods, response.NewPaymentMethodResponse), nil
}

func (d *DefaultPaymentManager) AddMethod(
	ctx context.Context,
	userID string,
	req request.PaymentMethodRequest,
) (*response.PaymentMethodResponse, error) {
	if err := validateMethod(req); err != nil {
		return nil, err
	}

	m := &entity.PaymentMethod{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: d.now().UTC(),
	}
	applyMethod(m, req)

	if _, err := d.repositories.PaymentMethodRepository.Insert(ctx, m); err != nil {
		return nil, d.internal("failed to add payment method", err)
	}

	res := response.NewPaymentMethodResponse(*m)
	return &res, nil
}

func (d *DefaultPaymentManager) UpdateMethod(
	ctx context.Context,
	userID, id string,
	req request.PaymentMethodRequest,
) (*response.PaymentMethodResponse, error) {
	if err := validateMethod(req); err != nil {
		return nil, err
	}

	m, err := d.repositories.PaymentMethodRepository.FindByID(ctx, userID, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPaymentMethodNotFound)
	}
	applyMethod(m, req)

	if err := d.repositories.PaymentMethodRepository.Update(ctx, m); err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPaymentMethodNotFound)
	}

	res := response.NewPaymentMethodResponse(*m)
	return &res, nil
}

func (d *DefaultPaymentManager) DeleteMethod(ctx context.Context, userID, id string) error {
	if err := d.repositories.PaymentMethodRepository.DeleteByID(ctx, userID, id); err != nil {
		return exception.NotFoundOrInternal(err, exception.ErrPaymentMethodNotFound)
	}
	return nil
}

// validateMethod checks the fields each method type needs.
func validateMethod(req request.PaymentMethodRequest) error {
	var missing []string
	switch req.Type {
	case payment.Card:
		if blank(req.Last4) {
			missing = append(missing, "last4")
		}
		if req.ExpiryMonth == nil {
			missing = append(missing, "expiry_month")
		}
		if req.ExpiryYear == nil {
			missing = append(missing, "expiry_year")
		}
		if blank(req.CardholderName) {
			missing = append(missing, "cardholder_name")
		}
	case payment.UPI:
		if blank(req.UPIID) {
			missing = append(missing, "upi_id")
		}
	case payment.NetBanking:
		if blank(req.Provider) {
			missing = append(missing, "provider")
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return exception.NewBadRequestError(
		exception.ErrorWithContext(exception.ErrInvalidParameter, "type", req.Type),
		int(exception.ErrorCodeInvalidParameter),
		fmt.Sprintf("%s payment method requires %s", req.Type, strings.Join(missing, ", ")),
		map[string]any{"missing": missing},
	)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func applyMethod(m *entity.PaymentMethod, req request.PaymentMethodRequest) {
	m.Type = req.Type
	m.CardType = req.CardType
	m.Last4 = req.Last4
	m.ExpiryMonth = req.ExpiryMonth
	m.ExpiryYear = req.ExpiryYear
	m.CardholderName = req.CardholderName
	m.UPIID = req.UPIID
	m.Provider = req.Provider
	m.IsDefault = req.IsDefault
}

// ProcessPayment records a payment against one of the user's policies. There
// is no gateway behind it; every payment completes immediately.
func (d *DefaultPaymentManager) ProcessPayment(
	ctx context.Context,
	userID string,
	req request.ProcessPaymentRequest,
) (*response.PaymentResponse, error) {
	p, err := d.repositories.PolicyRepository.FindByID(ctx, req.PolicyID)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrPolicyNotFound)
	}

	now := d.now().UTC()
	pay := &entity.Payment{
		ID:            "pay_" + uuid.NewString(),
		UserID:        userID,
		PolicyID:      p.ID,
		PolicyNumber:  p.PolicyNumber,
		PolicyName:    p.Name,
		Amount:        req.Amount,
		Date:          now,
		Status:        payment.Completed,
		Method:        req.Method,
		TransactionID: transactionID(now),
		CreatedAt:     now,
	}
	if _, err := d.repositories.PaymentRepository.Insert(ctx, pay); err != nil {
		return nil, d.internal("failed to record payment", err)
	}

	d.logger.Info("payment processed",
		zap.String("payment_id", pay.ID),
		zap.String("policy_id", pay.PolicyID),
		zap.String("amount", pay.Amount.String()))

	res := response.NewPaymentResponse(*pay)
	return &res, nil
}

func transactionID(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TXN%d%s", at.UnixMilli(), suffix)
}

func (d *DefaultPaymentManager) Upcoming(ctx context.Context, userID string) ([]response.UpcomingPaymentResponse, error) {
	now := d.now().UTC()
	due, err := d.repositories.UpcomingPaymentRepository.FindDueBetween(ctx, userID, now, now.Add(upcomingWindow))
	if err != nil {
		return nil, d.internal("failed to load upcoming payments", err)
	}
	return collection.Map(due, response.NewUpcomingPaymentResponse), nil
}

// SendDueReminders notifies about payments falling due within window that
// have no reminder yet and returns how many went out. A payment whose
// notification fails stays unreminded and is picked up by the next run.
func (d *DefaultPaymentManager) SendDueReminders(ctx context.Context, window time.Duration) (int, error) {
	now := d.now().UTC()
	due, err := d.repositories.UpcomingPaymentRepository.FindUnremindedDueBefore(ctx, now.Add(window), reminderBatchSize)
	if err != nil {
		return 0, fmt.Errorf("find due payments: %w", err)
	}

	reminded := make([]string, 0, len(due))
	for _, p := range due {
		if err := d.notifier.Notify(ctx, notifier.PaymentDue, response.NewUpcomingPaymentResponse(p)); err != nil {
			d.logger.Warn("failed to send payment reminder",
				zap.String("upcoming_payment_id", p.ID),
				zap.Error(err))
			continue
		}
		reminded = append(reminded, p.ID)
	}

	if _, err := d.repositories.UpcomingPaymentRepository.MarkReminded(ctx, reminded, now); err != nil {
		return 0, fmt.Errorf("mark payments reminded: %w", err)
	}
	return len(reminded), nil
}

func (d *DefaultPaymentManager) internal(msg string, err error) error {
	d.logger.Error(msg, zap.Error(err))
	return exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
}
