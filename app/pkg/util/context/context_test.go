package ctxutil_test

import (
	"context"
	"testing"

	ctxutil "backend/insurance-platform/app/pkg/util/context"

	"github.com/stretchr/testify/assert"
)

func TestGetAppModeFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want ctxutil.AppMode
	}{
		{env: "local", want: ctxutil.AppModeLocal},
		{env: "TEST", want: ctxutil.AppModeTest},
		{env: "dev", want: ctxutil.AppModeDev},
		{env: "production", want: ctxutil.AppModeProd},
		{env: "prod", want: ctxutil.AppModeProd},
		{env: "", want: ctxutil.AppModeLocal},
		{env: "staging", want: ctxutil.AppModeLocal},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			assert.Equal(t, tt.want, ctxutil.GetAppModeFromEnv())
		})
	}
}

func TestAppModeFromContext(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	assert.Equal(t, ctxutil.AppModeDev, ctxutil.GetAppMode(context.Background()))

	ctx := ctxutil.SetAppMode(context.Background(), ctxutil.AppModeTest)
	assert.Equal(t, ctxutil.AppModeTest, ctxutil.GetAppMode(ctx))
}

func TestContextKey(t *testing.T) {
	const key ctxutil.ContextKey[int] = "attempt"

	_, ok := key.Get(context.Background())
	assert.False(t, ok)

	v, ok := key.Get(key.Set(context.Background(), 3))
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctxutil.SetRequestID(context.Background(), "req-1")))
}
