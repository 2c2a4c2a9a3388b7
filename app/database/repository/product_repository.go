package repository

import (
	"context"

	"backend/insurance-platform/app/database/entity"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

type productIDs struct {
	ID []string `mapstructure:"id"`
}

type ProductRepository interface {
	Insert(ctx context.Context, product *entity.Product) error
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
}

type DefaultProductRepository struct {
	res runtime.Resource
}

func NewProductRepository(res runtime.Resource) ProductRepository {
	return &DefaultProductRepository{res: res}
}

func (r DefaultProductRepository) Insert(ctx context.Context, p *entity.Product) error {
	_, err := r.res.DB.NewInsert().Model(p).Exec(ctx)
	return err
}

func (r DefaultProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.res.DB.
		ReplicaNewSelect().
		Model(&products).
		Order("id ASC").
		Scan(ctx)
	return products, util.SkipNotFound(err)
}

func (r DefaultProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	p := new(entity.Product)
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

// FindByIDs returns the products among ids, ordered by id. Unknown ids are skipped.
func (r DefaultProductRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	return util.FindManyEntity[entity.Product](ctx, r.res.DB.ReplicaConn(), productIDs{ID: ids}, nil, pagingUtil.Page{})
}
