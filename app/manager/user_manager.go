package manager

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	queryUtil "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/util/collection"
)

var userSortColumns = []string{"created_at", "name", "email"}

type UserManager interface {
	List(ctx context.Context, req request.ListUsersRequest) (response.PaginationResponse[response.UserResponse], error)
	GetByID(ctx context.Context, id string) (*response.UserResponse, error)
	Create(ctx context.Context, req request.CreateUserRequest) (*response.UserResponse, error)
	Update(ctx context.Context, id string, req request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type DefaultUserManager struct {
	logger       *zap.Logger
	repositories *repository.Repositories
	now          func() time.Time
}

func NewUserManager(res runtime.Resource, repositories *repository.Repositories, now func() time.Time) UserManager {
	return &DefaultUserManager{
		logger:       res.Logger.With(zap.String("component", "user_manager")),
		repositories: repositories,
		now:          now,
	}
}

func (d *DefaultUserManager) List(ctx context.Context, req request.ListUsersRequest) (response.PaginationResponse[response.UserResponse], error) {
	users, total, err := d.repositories.UserRepository.FindMany(ctx, req.ToPage(userSortColumns...))
	if err != nil {
		d.logger.Error("failed to list users", zap.Error(err))
		return response.PaginationResponse[response.UserResponse]{}, exception.NewInternalServerError(
			err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}

	req.LoadDefaultValues()
	return response.ToPaginationResponse(
		collection.Map(users, response.NewUserResponse),
		int64(total), req.Page, req.Size,
	), nil
}

func (d *DefaultUserManager) GetByID(ctx context.Context, id string) (*response.UserResponse, error) {
	u, err := d.repositories.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrUserNotFound)
	}
	res := response.NewUserResponse(*u)
	return &res, nil
}

func (d *DefaultUserManager) Create(ctx context.Context, req request.CreateUserRequest) (*response.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if err := d.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	dob, err := parseDateOr(req.DateOfBirth, nil)
	if err != nil {
		return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "date_of_birth must use YYYY-MM-DD")
	}

	u := &entity.User{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: dob,
		CreatedAt:   d.now().UTC(),
	}
	if _, err := d.repositories.UserRepository.Insert(ctx, u); err != nil {
		return nil, d.insertError(err)
	}

	res := response.NewUserResponse(*u)
	return &res, nil
}

func (d *DefaultUserManager) Update(ctx context.Context, id string, req request.UpdateUserRequest) (*response.UserResponse, error) {
	u, err := d.repositories.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrUserNotFound)
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := d.ensureEmailFree(ctx, email, u.ID); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if u.DateOfBirth, err = parseDateOr(req.DateOfBirth, u.DateOfBirth); err != nil {
		return nil, exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "date_of_birth must use YYYY-MM-DD")
	}

	if err := d.repositories.UserRepository.Update(ctx, u); err != nil {
		if queryUtil.IsUniqueViolation(err) {
			return nil, d.insertError(err)
		}
		return nil, exception.NotFoundOrInternal(err, exception.ErrUserNotFound)
	}

	res := response.NewUserResponse(*u)
	return &res, nil
}

func (d *DefaultUserManager) Delete(ctx context.Context, id string) error {
	if err := d.repositories.UserRepository.DeleteByID(ctx, id); err != nil {
		return exception.NotFoundOrInternal(err, exception.ErrUserNotFound)
	}
	return nil
}

// ensureEmailFree fails with 409 when another user than ownerID holds email.
func (d *DefaultUserManager) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	existing, err := d.repositories.UserRepository.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	case existing.ID == ownerID:
		return nil
	default:
		return exception.NewConflictError(nil, int(exception.ErrorCodeConflict), exception.ErrEmailAlreadyExisted.Error())
	}
}

func (d *DefaultUserManager) insertError(err error) error {
	if queryUtil.IsUniqueViolation(err) {
		return exception.NewConflictError(err, int(exception.ErrorCodeConflict), exception.ErrEmailAlreadyExisted.Error())
	}
	d.logger.Error("failed to save user", zap.Error(err))
	return exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
