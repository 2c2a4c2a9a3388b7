package util_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/migration"
	"backend/insurance-platform/app/database/seed"
	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/db"
	"backend/insurance-platform/app/pkg/logging"
	"backend/insurance-platform/app/pkg/redis"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

// TestResource bundles a runtime.Resource backed by a private in-memory
// sqlite database and a miniredis server.
type TestResource struct {
	runtime.Resource
	Miniredis *miniredis.Miniredis
}

// NewTestResource reads config-test.yaml and wires a fresh migrated database
// and redis for t. Everything is closed when t finishes.
func NewTestResource(t testing.TB) *TestResource {
	t.Helper()

	logger, err := logging.NewLogConfig("[insurance-platform]", ctxutil.AppModeTest).NewLogging()
	require.NoError(t, err)

	cfg, err := config.ReadApplicationConfig(ctxutil.AppModeTest, logger)
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	database, err := db.NewSQLiteDB(dsn, logger)
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(context.Background(), database, logger))

	mr := miniredis.RunT(t)
	cfg.RedisConfig.Hosts = mr.Addr()
	rds := redis.NewRedisClientFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), logger)

	t.Cleanup(func() {
		_ = rds.Close()
		_ = database.Close()
		_ = logger.Sync()
	})

	return &TestResource{
		Resource: runtime.Resource{
			Config: cfg,
			Logger: logger,
			DB:     database,
			Redis:  rds,
		},
		Miniredis: mr,
	}
}

// Seed loads the demo fixtures relative to now.
func (r *TestResource) Seed(t testing.TB, now time.Time) {
	t.Helper()
	require.NoError(t, seed.Seed(context.Background(), r.DB, now, r.Logger))
}

// NopLogger is used by tests that do not care about log output.
func NopLogger() *zap.Logger {
	return zap.NewNop()
}
