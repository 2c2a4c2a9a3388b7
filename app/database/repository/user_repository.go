package repository

import (
	"context"
	"time"

	"backend/insurance-platform/app/database/entity"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

type UserRepository interface {
	Insert(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	DeleteByID(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindMany(ctx context.Context, page pagingUtil.Page) ([]entity.User, int, error)
}

type DefaultUserRepository struct {
	res runtime.Resource
}

func NewUserRepository(res runtime.Resource) UserRepository {
	return &DefaultUserRepository{res: res}
}

func (r DefaultUserRepository) Insert(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.res.DB.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r DefaultUserRepository) Update(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	user.UpdatedAt = &now
	res, err := r.res.DB.
		NewUpdate().
		Model(user).
		Column("name", "email", "phone", "address", "date_of_birth", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultUserRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.res.DB.
		NewDelete().
		Model(&entity.User{ID: id}).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r DefaultUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

type userEmail struct {
	Email string `mapstructure:"email"`
}

func (r DefaultUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := util.FindOneEntityOrFailed[entity.User](ctx, r.res.DB.ReplicaConn(), userEmail{Email: email}, nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r DefaultUserRepository) FindMany(ctx context.Context, page pagingUtil.Page) ([]entity.User, int, error) {
	return util.FindManyEntityWithCount[entity.User](ctx, r.res.DB.ReplicaConn(), struct{}{}, nil, page)
}
