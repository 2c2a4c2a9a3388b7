package notifier

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
)

type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
	now        func() time.Time
}

// NewNotifier posts events to cfg.WebhookURL. Without a URL events are only
// logged. The request timeout is the one set on httpClient.
func NewNotifier(cfg config.NotifierConfig, httpClient *resty.Client, logger *zap.Logger) Notifier {
	logger = logger.With(zap.String("component", "notifier"))
	if cfg.WebhookURL == "" {
		return &logNotifier{logger: logger}
	}

	return &WebhookNotifier{
		httpClient: httpClient,
		url:        cfg.WebhookURL,
		logger:     logger,
		now:        time.Now,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, event string, data any) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(Event{Event: event, SentAt: n.now().UTC(), Data: data}).
		Post(n.url)
	if err != nil {
		n.logger.Error("failed to post webhook", zap.String("event", event), zap.Error(err))
		return err
	}

	if resp.IsError() {
		n.logger.Warn("Non-2xx response from webhook",
			zap.String("event", event),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", string(resp.Body())),
		)
		return &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	n.logger.Info("webhook delivered", zap.String("event", event))
	return nil
}

type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) Notify(_ context.Context, event string, data any) error {
	n.logger.Info("webhook disabled, event dropped", zap.String("event", event), zap.Any("data", data))
	return nil
}
