package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	server "backend/insurance-platform/app/api"
	"backend/insurance-platform/app/database/migration"
	"backend/insurance-platform/app/database/seed"
	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/logging"
	ctxutil "backend/insurance-platform/app/pkg/util/context"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	env := ctxutil.GetAppModeFromEnv()
	ctx := ctxutil.SetAppMode(context.Background(), env)

	logger, err := logging.NewLogConfig("[insurance-platform]", env).NewLogging()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	cfg, err := config.ReadApplicationConfig(env, logger)
	if err != nil {
		logger.Fatal("Failed to load APP configuration", zap.Error(err))
	}

	res, err := runtime.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize resources", zap.Error(err))
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Error("Failed to close resources", zap.Error(err))
			return
		}
		logger.Info("Closed database and redis connections")
	}()

	if err := prepareDatabase(ctx, res); err != nil {
		logger.Error("Failed to prepare database", zap.Error(err))
		return
	}

	httpServer := server.Server(*res)
	httpServer.Start(ctx)
}

// prepareDatabase creates the schema and loads the demo fixtures when the
// app config asks for it.
func prepareDatabase(ctx context.Context, res *runtime.Resource) error {
	if res.Config.AppConfig.AutoMigrate {
		if err := migration.Migrate(ctx, res.DB, res.Logger); err != nil {
			return err
		}
	}
	if res.Config.AppConfig.SeedOnStart {
		return seed.Seed(ctx, res.DB, time.Now(), res.Logger)
	}
	return nil
}
