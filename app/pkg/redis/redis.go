package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
)

type Redis interface {
	GetUniversalClient() redis.UniversalClient
	Reset(ctx context.Context) error
	Close() error

	// Optimal method to use to set a value into redis. It supports only primitive types like string, int, float, etc.
	// The detail can be checked at https://github.com/redis/go-redis/blob/master/internal/proto/scan.go
	SetPrimitive(ctx context.Context, key string, value any, ttl time.Duration) error
	GetPrimitive(ctx context.Context, key string, outPtr any) error

	// Default method to use to set a value into redis. It supports any type of value including structs, maps, slices, etc.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, outPtr any) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Increment adds val to the counter at key and returns the new value.
	Increment(ctx context.Context, key string, val int64) (int64, error)

	AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockKey string) error
}

type Client struct {
	client    redis.UniversalClient
	log       *zap.Logger
	isCluster bool
}

// NewRedisClient connects to a single node when one host is configured and to
// a cluster otherwise.
func NewRedisClient(cfg config.RedisConfig, log *zap.Logger) (*Client, error) {
	hosts := cfg.Addrs()
	if len(hosts) == 0 {
		return nil, errors.New("no redis hosts configured")
	}

	// go-redis returns a cluster client for more than one address.
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:           hosts,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		WriteTimeout:    cfg.WriteTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	_, isCluster := client.(*redis.ClusterClient)

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("connected to redis",
		zap.Strings("hosts", hosts),
		zap.Bool("cluster", isCluster),
	)

	return &Client{
		client:    client,
		log:       log,
		isCluster: isCluster,
	}, nil
}

// NewRedisClientFromUniversal wraps an already configured go-redis client.
func NewRedisClientFromUniversal(client redis.UniversalClient, log *zap.Logger) *Client {
	_, isCluster := client.(*redis.ClusterClient)
	return &Client{
		client:    client,
		log:       log,
		isCluster: isCluster,
	}
}

func (r *Client) GetUniversalClient() redis.UniversalClient {
	return r.client
}

func (r *Client) Close() error {
	return r.client.Close()
}

func (r *Client) Reset(ctx context.Context) error {
	if cluster, ok := r.client.(*redis.ClusterClient); ok {
		return cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return node.FlushDB(ctx).Err()
		})
	}
	return r.client.FlushDB(ctx).Err()
}

func (r *Client) SetPrimitive(c context.Context, key string, value any, ttl time.Duration) error {
	return r.client.Set(c, key, value, ttl).Err()
}

func (r *Client) GetPrimitive(c context.Context, key string, outPtr any) error {
	return r.client.Get(c, key).Scan(outPtr)
}

func (r *Client) Set(c context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(c, key, b, ttl).Err()
}

func (r *Client) Get(c context.Context, key string, outPtr any) error {
	b, err := r.client.Get(c, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, outPtr)
}

func (r *Client) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Client) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, SkipNotFound(err)
	}
	return result >= 1, nil
}

func (r *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, key, ttl).Err()
}

func (r *Client) Increment(ctx context.Context, key string, val int64) (int64, error) {
	return r.client.IncrBy(ctx, key, val).Result()
}

func (r *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKey, true, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return ok, nil
}

func (r *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	return r.Delete(ctx, lockKey)
}

func SkipNotFound(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// IsNotFound reports whether err is a cache miss.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Wrap loads key into model, computing and storing it with callback on a miss.
// A failing cache write does not fail the call since model already holds the value.
func Wrap[T any](
	c context.Context,
	r Redis,
	key string,
	model *T,
	ttl time.Duration,
	callback func() (T, error),
) error {
	if err := r.Get(c, key, model); err == nil {
		return nil
	}

	res, err := callback()
	if err != nil {
		return err
	}
	*model = res
	_ = r.Set(c, key, res, ttl)
	return nil
}

// WithLock runs fn while holding lockKey, waiting up to wait for it to be released.
func WithLock(ctx context.Context, r Redis, lockKey string, ttl, wait time.Duration, fn func() error) error {
	deadline := time.Now().Add(wait)
	for {
		ok, err := r.AcquireLock(ctx, lockKey, ttl)
		if err != nil {
			return err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
	}
	defer func() {
		_ = r.ReleaseLock(context.WithoutCancel(ctx), lockKey)
	}()
	return fn()
}

var ErrLockTimeout = errors.New("timed out waiting for lock")
