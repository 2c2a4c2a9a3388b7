package main

import (
	"context"

	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/logging"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
	server "backend/insurance-platform/app/worker"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	env := ctxutil.GetAppModeFromEnv()
	ctx := ctxutil.SetAppMode(context.Background(), env)

	logger, err := logging.NewLogConfig("[insurance-worker]", env).NewLogging()
	if err != nil {
		panic(err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)
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
		}
	}()

	workerServer := server.Server(*res)
	workerServer.Start(ctx)
}
