package ctxutil

import (
	"context"
	"os"
	"strings"
)

type AppMode string

const (
	AppModeLocal AppMode = "local"
	AppModeTest  AppMode = "test"
	AppModeDev   AppMode = "dev"
	AppModeProd  AppMode = "production"
)

// ContextKey ties a context value to its type.
type ContextKey[T any] string

func (k ContextKey[T]) Get(ctx context.Context) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

func (k ContextKey[T]) Set(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

const (
	appModeKey   ContextKey[AppMode] = "app_mode"
	requestIDKey ContextKey[string]  = "request_id"
)

func SetAppMode(ctx context.Context, appMode AppMode) context.Context {
	return appModeKey.Set(ctx, appMode)
}

// GetAppMode returns the mode stored by SetAppMode, falling back to APP_ENV.
func GetAppMode(ctx context.Context) AppMode {
	if mode, ok := appModeKey.Get(ctx); ok {
		return mode
	}
	return GetAppModeFromEnv()
}

func GetAppModeFromEnv() AppMode {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	switch env {
	case string(AppModeLocal):
		return AppModeLocal
	case string(AppModeTest):
		return AppModeTest
	case string(AppModeDev):
		return AppModeDev
	case string(AppModeProd), "prod":
		return AppModeProd
	default:
		return AppModeLocal
	}
}

func SetRequestID(ctx context.Context, id string) context.Context {
	return requestIDKey.Set(ctx, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := requestIDKey.Get(ctx)
	return id
}
