package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

// LOG_LEVEL overrides the level picked from the app mode.
const logLevelEnv = "LOG_LEVEL"

type LogConfig struct {
	ServiceName string
	Env         ctxutil.AppMode
}

func NewLogConfig(serviceName string, appMode ctxutil.AppMode) *LogConfig {
	return &LogConfig{
		ServiceName: serviceName,
		Env:         appMode,
	}
}

func (cfg *LogConfig) NewLogging() (*zap.Logger, error) {
	level := cfg.level()
	zapConfig := zap.NewProductionConfig()
	if cfg.Env != ctxutil.AppModeProd {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	service := zap.Fields(zap.String("service", cfg.ServiceName))

	if cfg.Env == ctxutil.AppModeLocal {
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapConfig.Build(service)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapConfig.EncoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)
	return zap.New(
		core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		service,
	), nil
}

func (cfg *LogConfig) level() zapcore.Level {
	if raw := os.Getenv(logLevelEnv); raw != "" {
		if level, err := zapcore.ParseLevel(raw); err == nil {
			return level
		}
	}
	return getLogLevel(cfg.Env)
}

func getLogLevel(appMode ctxutil.AppMode) zapcore.Level {
	switch appMode {
	case ctxutil.AppModeProd, ctxutil.AppModeTest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// FromContext tags logger with the request id carried by ctx, if any.
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id := ctxutil.GetRequestID(ctx); id != "" {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}
