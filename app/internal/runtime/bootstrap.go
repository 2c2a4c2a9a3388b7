package runtime

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/aws"
	"backend/insurance-platform/app/pkg/db"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/redis"
	httpClientUtil "backend/insurance-platform/app/pkg/util/httpclient"
)

// Bootstrap opens the database, redis and outbound clients described by cfg.
// The SQS client is only built when a claim event queue is configured. On
// error every connection opened so far is closed again.
func Bootstrap(ctx context.Context, cfg config.ApplicationConfig, logger *zap.Logger) (*Resource, error) {
	res := &Resource{Config: cfg, Logger: logger}

	var err error
	if res.DB, err = db.NewDB(cfg, logger); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	rds, err := redis.NewRedisClient(cfg.RedisConfig, logger)
	if err != nil {
		res.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	res.Redis = rds

	res.HttpClient = httpClientUtil.NewRestyClient(cfg.NotifierConfig.Timeout, logger)
	res.Clients.Notifier = notifier.NewNotifier(cfg.NotifierConfig, res.HttpClient, logger)

	if cfg.AwsConfig.SQSEnabled() {
		if res.SqsClient, err = aws.NewSQSClient(ctx, cfg.AwsConfig); err != nil {
			res.Close()
			return nil, fmt.Errorf("create sqs client: %w", err)
		}
	}
	return res, nil
}

// Close releases the database and redis connections.
func (r *Resource) Close() error {
	var errs []error
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if r.DB != nil {
		if err := r.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
