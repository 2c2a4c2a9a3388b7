// Package migration creates the service schema from the bun entities.
package migration

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/entity"
)

type index struct {
	name    string
	model   any
	columns []string
}

func models() []any {
	return []any{
		(*entity.User)(nil),
		(*entity.Product)(nil),
		(*entity.Policy)(nil),
		(*entity.Quote)(nil),
		(*entity.Claim)(nil),
		(*entity.Payment)(nil),
		(*entity.PaymentMethod)(nil),
		(*entity.UpcomingPayment)(nil),
		(*entity.Job)(nil),
	}
}

func indexes() []index {
	return []index{
		{name: "idx_policies_user_id", model: (*entity.Policy)(nil), columns: []string{"user_id"}},
		{name: "idx_claims_policy_id", model: (*entity.Claim)(nil), columns: []string{"policy_id"}},
		{name: "idx_claims_user_status", model: (*entity.Claim)(nil), columns: []string{"user_id", "status"}},
		{name: "idx_quotes_user_id", model: (*entity.Quote)(nil), columns: []string{"user_id"}},
		{name: "idx_payments_user_date", model: (*entity.Payment)(nil), columns: []string{"user_id", "date"}},
		{name: "idx_payment_methods_user_id", model: (*entity.PaymentMethod)(nil), columns: []string{"user_id"}},
		{name: "idx_upcoming_payments_due", model: (*entity.UpcomingPayment)(nil), columns: []string{"due_date", "reminder_sent"}},
		{name: "idx_jobs_status", model: (*entity.Job)(nil), columns: []string{"status", "scheduled_at"}},
	}
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db bun.IDB, logger *zap.Logger) error {
	for _, model := range models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	for _, idx := range indexes() {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	logger.Info("database schema is up to date", zap.Int("tables", len(models())))
	return nil
}

// Drop removes every table. Only used by tests and the CLI reset flag.
func Drop(ctx context.Context, db bun.IDB) error {
	all := models()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(all[i]).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
