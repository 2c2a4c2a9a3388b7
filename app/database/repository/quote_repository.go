package repository

import (
	"context"
	"time"

	"backend/insurance-platform/app/database/entity"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

type QuoteFilter struct {
	UserID string `mapstructure:"user_id,omitempty"`
}

type QuoteRepository interface {
	Insert(ctx context.Context, quote *entity.Quote) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	DeleteByID(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Quote, error)
	FindMany(ctx context.Context, filter QuoteFilter, page pagingUtil.Page) ([]entity.Quote, int, error)
}

type DefaultQuoteRepository struct {
	res runtime.Resource
}

func NewQuoteRepository(res runtime.Resource) QuoteRepository {
	return &DefaultQuoteRepository{res: res}
}

func (r DefaultQuoteRepository) Insert(ctx context.Context, q *entity.Quote) (*entity.Quote, error) {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if _, err := r.res.DB.NewInsert().Model(q).Exec(ctx); err != nil {
		return nil, err
	}
	return q, nil
}

func (r DefaultQuoteRepository) Update(ctx context.Context, q *entity.Quote) error {
	now := time.Now().UTC()
	q.UpdatedAt = &now
	res, err := r.res.DB.
		NewUpdate().
		Model(q).
		Column("policy_type", "age", "coverage_amount", "duration", "premium", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultQuoteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.res.DB.
		NewDelete().
		Model(&entity.Quote{ID: id}).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultQuoteRepository) FindByID(ctx context.Context, id string) (*entity.Quote, error) {
	q := new(entity.Quote)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(q).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r DefaultQuoteRepository) FindMany(ctx context.Context, filter QuoteFilter, page pagingUtil.Page) ([]entity.Quote, int, error) {
	if page.OrderBy == "" {
		page.OrderBy = "created_at"
		page.SortBy = pagingUtil.DESC
	}
	return util.FindManyEntityWithCount[entity.Quote](ctx, r.res.DB.ReplicaConn(), filter, nil, page)
}
