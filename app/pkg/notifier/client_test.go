package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
)

func TestWebhookNotifier_Notify(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewNotifier(config.NotifierConfig{WebhookURL: server.URL}, resty.New(), zap.NewNop())
	sentAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	n.(*WebhookNotifier).now = func() time.Time { return sentAt }

	err := n.Notify(context.Background(), ClaimStatusChanged, map[string]string{"claim_id": "c1"})
	require.NoError(t, err)

	assert.Equal(t, ClaimStatusChanged, received.Event)
	assert.True(t, sentAt.Equal(received.SentAt))
	assert.Equal(t, map[string]any{"claim_id": "c1"}, received.Data)
}

func TestWebhookNotifier_StatusError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
	}{
		{name: "bad request", status: http.StatusBadRequest, retryable: false},
		{name: "gone", status: http.StatusGone, retryable: false},
		{name: "throttled", status: http.StatusTooManyRequests, retryable: true},
		{name: "server error", status: http.StatusBadGateway, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer server.Close()

			n := NewNotifier(config.NotifierConfig{WebhookURL: server.URL}, resty.New(), zap.NewNop())
			err := n.Notify(context.Background(), ClaimStatusChanged, nil)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, "nope", statusErr.Body)
			assert.Equal(t, tt.retryable, statusErr.Retryable())
		})
	}
}

func TestNewNotifier_WithoutURL(t *testing.T) {
	n := NewNotifier(config.NotifierConfig{}, resty.New(), zap.NewNop())

	_, isWebhook := n.(*WebhookNotifier)
	assert.False(t, isWebhook)
	assert.NoError(t, n.Notify(context.Background(), ClaimStatusChanged, "ignored"))
}
