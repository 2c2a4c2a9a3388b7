package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/entity"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
)

type PaymentRepository interface {
	Insert(ctx context.Context, payment *entity.Payment) (*entity.Payment, error)
	FindHistory(ctx context.Context, userID string) ([]entity.Payment, error)
}

type DefaultPaymentRepository struct {
	res runtime.Resource
}

func NewPaymentRepository(res runtime.Resource) PaymentRepository {
	return &DefaultPaymentRepository{res: res}
}

func (r DefaultPaymentRepository) Insert(ctx context.Context, p *entity.Payment) (*entity.Payment, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.res.DB.NewInsert().Model(p).Exec(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// FindHistory lists the payments of a user, newest first.
func (r DefaultPaymentRepository) FindHistory(ctx context.Context, userID string) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.res.DB.
		ReplicaNewSelect().
		Model(&payments).
		Where("user_id = ?", userID).
		Order("date DESC", "id ASC").
		Scan(ctx)
	return payments, util.SkipNotFound(err)
}

type paymentMethodOwner struct {
	UserID    string `mapstructure:"user_id"`
	IsDefault bool   `mapstructure:"is_default"`
}

type paymentMethodDefault struct {
	IsDefault bool `mapstructure:"is_default"`
}

type PaymentMethodRepository interface {
	Insert(ctx context.Context, method *entity.PaymentMethod) (*entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
	DeleteByID(ctx context.Context, userID, id string) error
	FindByID(ctx context.Context, userID, id string) (*entity.PaymentMethod, error)
	FindByUserID(ctx context.Context, userID string) ([]entity.PaymentMethod, error)
	ClearDefault(ctx context.Context, userID string) error
}

type DefaultPaymentMethodRepository struct {
	res runtime.Resource
}

func NewPaymentMethodRepository(res runtime.Resource) PaymentMethodRepository {
	return &DefaultPaymentMethodRepository{res: res}
}

// Insert stores method. A default method takes the flag away from the user's
// other methods in the same transaction.
func (r DefaultPaymentMethodRepository) Insert(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	err := r.res.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if m.IsDefault {
			if err := clearDefault(ctx, tx, m.UserID); err != nil {
				return err
			}
		}
		_, err := tx.NewInsert().Model(m).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r DefaultPaymentMethodRepository) Update(ctx context.Context, m *entity.PaymentMethod) error {
	now := time.Now().UTC()
	m.UpdatedAt = &now
	return r.res.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if m.IsDefault {
			if err := clearDefault(ctx, tx, m.UserID); err != nil {
				return err
			}
		}
		res, err := tx.NewUpdate().
			Model(m).
			Column("card_type", "last4", "expiry_month", "expiry_year", "cardholder_name",
				"upi_id", "provider", "is_default", "updated_at").
			WherePK().
			Where("user_id = ?", m.UserID).
			Exec(ctx)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (r DefaultPaymentMethodRepository) DeleteByID(ctx context.Context, userID, id string) error {
	res, err := r.res.DB.
		NewDelete().
		Model(&entity.PaymentMethod{ID: id}).
		WherePK().
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultPaymentMethodRepository) FindByID(ctx context.Context, userID, id string) (*entity.PaymentMethod, error) {
	m := new(entity.PaymentMethod)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(m).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r DefaultPaymentMethodRepository) FindByUserID(ctx context.Context, userID string) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := r.res.DB.
		ReplicaNewSelect().
		Model(&methods).
		Where("user_id = ?", userID).
		Order("is_default DESC", "created_at ASC").
		Scan(ctx)
	return methods, util.SkipNotFound(err)
}

func (r DefaultPaymentMethodRepository) ClearDefault(ctx context.Context, userID string) error {
	return clearDefault(ctx, r.res.DB, userID)
}

func clearDefault(ctx context.Context, db bun.IDB, userID string) error {
	_, err := util.UpdateBy[entity.PaymentMethod](
		ctx,
		db,
		paymentMethodOwner{UserID: userID, IsDefault: true},
		paymentMethodDefault{IsDefault: false},
	)
	return err
}

type UpcomingPaymentRepository interface {
	Insert(ctx context.Context, payment *entity.UpcomingPayment) error
	FindDueBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.UpcomingPayment, error)
	FindUnremindedDueBefore(ctx context.Context, before time.Time, limit int) ([]entity.UpcomingPayment, error)
	MarkReminded(ctx context.Context, ids []string, at time.Time) (int64, error)
}

type DefaultUpcomingPaymentRepository struct {
	res runtime.Resource
}

func NewUpcomingPaymentRepository(res runtime.Resource) UpcomingPaymentRepository {
	return &DefaultUpcomingPaymentRepository{res: res}
}

func (r DefaultUpcomingPaymentRepository) Insert(ctx context.Context, p *entity.UpcomingPayment) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.res.DB.NewInsert().Model(p).Exec(ctx)
	return err
}

func (r DefaultUpcomingPaymentRepository) FindDueBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.UpcomingPayment, error) {
	var payments []entity.UpcomingPayment
	err := r.res.DB.
		ReplicaNewSelect().
		Model(&payments).
		Where("user_id = ?", userID).
		Where("due_date >= ?", from).
		Where("due_date <= ?", to).
		Order("due_date ASC", "id ASC").
		Scan(ctx)
	return payments, util.SkipNotFound(err)
}

func (r DefaultUpcomingPaymentRepository) FindUnremindedDueBefore(ctx context.Context, before time.Time, limit int) ([]entity.UpcomingPayment, error) {
	var payments []entity.UpcomingPayment
	err := r.res.DB.
		NewSelect().
		Model(&payments).
		Where("reminder_sent = ?", false).
		Where("due_date <= ?", before).
		Order("due_date ASC").
		Limit(limit).
		Scan(ctx)
	return payments, util.SkipNotFound(err)
}

func (r DefaultUpcomingPaymentRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.res.DB.
		NewUpdate().
		Model((*entity.UpcomingPayment)(nil)).
		Set("reminder_sent = ?", true).
		Set("reminder_sent_at = ?", at).
		Where("id IN (?)", bun.In(ids)).
		Where("reminder_sent = ?", false).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
