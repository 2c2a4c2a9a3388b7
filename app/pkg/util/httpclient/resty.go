package httpClientUtil

import (
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// NewRestyClient returns a resty client with the given request timeout and
// three retries. A zero requestTimeout leaves the timeout unset. Every
// response is logged at debug level with its status and latency.
func NewRestyClient(requestTimeout time.Duration, log *zap.Logger) *resty.Client {
	client := resty.New().
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)

	if requestTimeout > 0 {
		client.SetTimeout(requestTimeout)
	}

	if log != nil {
		client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			log.Debug("http response",
				zap.String("method", resp.Request.Method),
				zap.String("url", resp.Request.URL),
				zap.Int("status", resp.StatusCode()),
				zap.Duration("latency", resp.Time()),
			)
			return nil
		})
	}

	return client
}
