package repository

import (
	"context"
	"time"

	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

type PolicyFilter struct {
	UserID string        `mapstructure:"user_id,omitempty"`
	Type   policy.Type   `mapstructure:"type,omitempty"`
	Status policy.Status `mapstructure:"status,omitempty"`
}

type policyKey struct {
	ID string `mapstructure:"id"`
}

type PolicyRepository interface {
	Insert(ctx context.Context, policy *entity.Policy) (*entity.Policy, error)
	Update(ctx context.Context, policy *entity.Policy) error
	DeleteByID(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Policy, error)
	FindMany(ctx context.Context, filter PolicyFilter, page pagingUtil.Page) ([]entity.Policy, int, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type DefaultPolicyRepository struct {
	res runtime.Resource
}

func NewPolicyRepository(res runtime.Resource) PolicyRepository {
	return &DefaultPolicyRepository{res: res}
}

func (r DefaultPolicyRepository) Insert(ctx context.Context, p *entity.Policy) (*entity.Policy, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.res.DB.NewInsert().Model(p).Exec(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (r DefaultPolicyRepository) Update(ctx context.Context, p *entity.Policy) error {
	now := time.Now().UTC()
	p.UpdatedAt = &now
	res, err := r.res.DB.
		NewUpdate().
		Model(p).
		Column("name", "status", "premium", "coverage_amount", "end_date", "next_premium_date", "benefits", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultPolicyRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.res.DB.
		NewDelete().
		Model(&entity.Policy{ID: id}).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultPolicyRepository) FindByID(ctx context.Context, id string) (*entity.Policy, error) {
	p := new(entity.Policy)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(p).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r DefaultPolicyRepository) FindMany(ctx context.Context, filter PolicyFilter, page pagingUtil.Page) ([]entity.Policy, int, error) {
	return util.FindManyEntityWithCount[entity.Policy](ctx, r.res.DB.ReplicaConn(), filter, nil, page)
}

func (r DefaultPolicyRepository) Exists(ctx context.Context, id string) (bool, error) {
	return util.CheckExist[entity.Policy](ctx, r.res.DB.ReplicaConn(), policyKey{ID: id})
}
