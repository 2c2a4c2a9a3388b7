package repository

import (
	"context"
	"database/sql"
	"time"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/entity"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

// ClaimFilter narrows claim listings. Empty fields are ignored.
type ClaimFilter struct {
	UserID   string       `mapstructure:"user_id,omitempty"`
	PolicyID string       `mapstructure:"policy_id,omitempty"`
	Status   claim.Status `mapstructure:"status,omitempty"`
	Type     claim.Type   `mapstructure:"type,omitempty"`
}

type ClaimRepository interface {
	Insert(ctx context.Context, claim *entity.Claim) (*entity.Claim, error)
	Update(ctx context.Context, claim *entity.Claim) error
	UpdateStatus(ctx context.Context, claim *entity.Claim, from claim.Status) error
	DeleteByID(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Claim, error)
	FindMany(ctx context.Context, filter ClaimFilter, page pagingUtil.Page) ([]entity.Claim, int, error)
	FindByPolicyID(ctx context.Context, policyID string) ([]entity.Claim, error)
}

type DefaultClaimRepository struct {
	res runtime.Resource
}

func NewClaimRepository(res runtime.Resource) ClaimRepository {
	return &DefaultClaimRepository{res: res}
}

func (r DefaultClaimRepository) Insert(ctx context.Context, c *entity.Claim) (*entity.Claim, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := r.res.DB.NewInsert().Model(c).Exec(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r DefaultClaimRepository) Update(ctx context.Context, c *entity.Claim) error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	res, err := r.res.DB.
		NewUpdate().
		Model(c).
		Column("description", "amount", "estimated_settlement", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpdateStatus writes the status fields of c only if the stored status still
// equals from, so two concurrent transitions cannot both succeed.
func (r DefaultClaimRepository) UpdateStatus(ctx context.Context, c *entity.Claim, from claim.Status) error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	res, err := r.res.DB.
		NewUpdate().
		Model(c).
		Column("status", "approved_date", "rejected_date", "settlement_amount", "rejection_reason", "updated_at").
		WherePK().
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultClaimRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.res.DB.
		NewDelete().
		Model(&entity.Claim{ID: id}).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultClaimRepository) FindByID(ctx context.Context, id string) (*entity.Claim, error) {
	c := new(entity.Claim)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(c).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r DefaultClaimRepository) FindMany(ctx context.Context, filter ClaimFilter, page pagingUtil.Page) ([]entity.Claim, int, error) {
	return util.FindManyEntityWithCount[entity.Claim](ctx, r.res.DB.ReplicaConn(), filter, nil, page.OrDefault("filed_date", pagingUtil.DESC))
}

func (r DefaultClaimRepository) FindByPolicyID(ctx context.Context, policyID string) ([]entity.Claim, error) {
	var claims []entity.Claim
	err := r.res.DB.
		ReplicaNewSelect().
		Model(&claims).
		Where("policy_id = ?", policyID).
		Order("filed_date DESC", "id ASC").
		Scan(ctx)
	return claims, util.SkipNotFound(err)
}

// requireAffected turns an update or delete that matched nothing into sql.ErrNoRows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
