package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/redis"
	"backend/insurance-platform/app/pkg/util/collection"
)

const (
	MaxComparedProducts = 3

	comparisonKey     = "comparison:%s"
	comparisonLockKey = "lock:comparison:%s"
	comparisonLockTTL = 5 * time.Second
	comparisonTTL     = 30 * 24 * time.Hour
)

type ProductManager interface {
	List(ctx context.Context) ([]response.ProductResponse, error)
	GetByID(ctx context.Context, id string) (*response.ProductResponse, error)
}

type DefaultProductManager struct {
	logger       *zap.Logger
	repositories *repository.Repositories
}

func NewProductManager(res runtime.Resource, repositories *repository.Repositories) ProductManager {
	return &DefaultProductManager{
		logger:       res.Logger.With(zap.String("component", "product_manager")),
		repositories: repositories,
	}
}

func (d *DefaultProductManager) List(ctx context.Context) ([]response.ProductResponse, error) {
	products, err := d.repositories.ProductRepository.FindAll(ctx)
	if err != nil {
		d.logger.Error("failed to list products", zap.Error(err))
		return nil, exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
	}
	return collection.Map(products, response.NewProductResponse), nil
}

func (d *DefaultProductManager) GetByID(ctx context.Context, id string) (*response.ProductResponse, error) {
	p, err := d.repositories.ProductRepository.FindByID(ctx, id)
	if err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrProductNotFound)
	}
	res := response.NewProductResponse(*p)
	return &res, nil
}

// ComparisonManager keeps a short per-user list of products to compare side
// by side. The list lives in redis; mutations hold a per-user lock so the
// size check and the push happen together.
type ComparisonManager interface {
	Get(ctx context.Context, userID string) (*response.ComparisonResponse, error)
	Add(ctx context.Context, userID, productID string) (*response.ComparisonResponse, error)
	Remove(ctx context.Context, userID, productID string) (*response.ComparisonResponse, error)
	Clear(ctx context.Context, userID string) error
}

type DefaultComparisonManager struct {
	res          runtime.Resource
	logger       *zap.Logger
	repositories *repository.Repositories
}

func NewComparisonManager(res runtime.Resource, repositories *repository.Repositories) ComparisonManager {
	return &DefaultComparisonManager{
		res:          res,
		logger:       res.Logger.With(zap.String("component", "comparison_manager")),
		repositories: repositories,
	}
}

func (d *DefaultComparisonManager) Get(ctx context.Context, userID string) (*response.ComparisonResponse, error) {
	ids, err := d.ids(ctx, userID)
	if err != nil {
		return nil, d.internal(err)
	}
	return d.toResponse(ctx, ids)
}

func (d *DefaultComparisonManager) Add(ctx context.Context, userID, productID string) (*response.ComparisonResponse, error) {
	if _, err := d.repositories.ProductRepository.FindByID(ctx, productID); err != nil {
		return nil, exception.NotFoundOrInternal(err, exception.ErrProductNotFound)
	}

	var ids []string
	err := d.withLock(ctx, userID, func() error {
		var err error
		if ids, err = d.ids(ctx, userID); err != nil {
			return err
		}
		if slices.Contains(ids, productID) {
			return nil
		}
		if len(ids) >= MaxComparedProducts {
			return exception.NewBadRequestError(nil, int(exception.ErrorCodeComparisonLimitReached),
				exception.ErrComparisonLimitReached.Error(), map[string]any{"max": MaxComparedProducts})
		}

		client := d.res.Redis.GetUniversalClient()
		key := fmt.Sprintf(comparisonKey, userID)
		if err := client.RPush(ctx, key, productID).Err(); err != nil {
			return err
		}
		if err := client.Expire(ctx, key, comparisonTTL).Err(); err != nil {
			return err
		}
		ids = append(ids, productID)
		return nil
	})
	if err != nil {
		return nil, d.internal(err)
	}

	return d.toResponse(ctx, ids)
}

func (d *DefaultComparisonManager) Remove(ctx context.Context, userID, productID string) (*response.ComparisonResponse, error) {
	var ids []string
	err := d.withLock(ctx, userID, func() error {
		key := fmt.Sprintf(comparisonKey, userID)
		if err := d.res.Redis.GetUniversalClient().LRem(ctx, key, 0, productID).Err(); err != nil {
			return err
		}
		var err error
		ids, err = d.ids(ctx, userID)
		return err
	})
	if err != nil {
		return nil, d.internal(err)
	}
	return d.toResponse(ctx, ids)
}

func (d *DefaultComparisonManager) Clear(ctx context.Context, userID string) error {
	err := d.withLock(ctx, userID, func() error {
		return d.res.Redis.Delete(ctx, fmt.Sprintf(comparisonKey, userID))
	})
	if err != nil {
		return d.internal(err)
	}
	return nil
}

func (d *DefaultComparisonManager) ids(ctx context.Context, userID string) ([]string, error) {
	ids, err := d.res.Redis.GetUniversalClient().LRange(ctx, fmt.Sprintf(comparisonKey, userID), 0, -1).Result()
	if err != nil && !redis.IsNotFound(err) {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (d *DefaultComparisonManager) withLock(ctx context.Context, userID string, fn func() error) error {
	return redis.WithLock(ctx, d.res.Redis, fmt.Sprintf(comparisonLockKey, userID), comparisonLockTTL, comparisonLockTTL, fn)
}

// toResponse keeps the order products were added in.
func (d *DefaultComparisonManager) toResponse(ctx context.Context, ids []string) (*response.ComparisonResponse, error) {
	products, err := d.repositories.ProductRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, d.internal(err)
	}

	byID := collection.KeyBy(products, func(p entity.Product) string { return p.ID })

	res := &response.ComparisonResponse{
		ProductIDs: ids,
		Products:   make([]response.ProductResponse, 0, len(ids)),
		Max:        MaxComparedProducts,
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			res.Products = append(res.Products, response.NewProductResponse(p))
		}
	}
	return res, nil
}

// internal passes http errors through and wraps anything else as a 500.
func (d *DefaultComparisonManager) internal(err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	d.logger.Error("comparison list failed", zap.Error(err))
	return exception.NewInternalServerError(err, int(exception.ErrorCodeInternalServer), exception.ErrInternalServer.Error())
}
