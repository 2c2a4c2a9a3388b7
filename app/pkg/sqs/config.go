package sqs

import (
	"time"

	"backend/insurance-platform/app/internal/config"
)

const (
	defaultMaxMessages       = 10
	defaultWaitTimeSeconds   = 20
	defaultVisibilitySeconds = 300
	defaultPollingInterval   = time.Second
	defaultMaxRetries        = 3
	defaultBaseRetryDelay    = 30 * time.Second
	defaultMaxRetryDelay     = 15 * time.Minute

	// Upper bound SQS accepts for a visibility timeout
	maxVisibilitySeconds = 43200
)

// WithDefaults fills every unset polling and retry setting.
func WithDefaults(cfg config.SQSConfig) config.SQSConfig {
	if cfg.Polling.MaxMessages <= 0 || cfg.Polling.MaxMessages > 10 {
		cfg.Polling.MaxMessages = defaultMaxMessages
	}
	if cfg.Polling.WaitTimeSeconds < 0 || cfg.Polling.WaitTimeSeconds > 20 {
		cfg.Polling.WaitTimeSeconds = defaultWaitTimeSeconds
	}
	if cfg.Polling.VisibilityTimeoutSeconds <= 0 {
		cfg.Polling.VisibilityTimeoutSeconds = defaultVisibilitySeconds
	}
	if cfg.Polling.PollingInterval <= 0 {
		cfg.Polling.PollingInterval = defaultPollingInterval
	}
	if cfg.Message.MaxRetries <= 0 {
		cfg.Message.MaxRetries = defaultMaxRetries
	}
	if cfg.Message.BaseRetryDelay <= 0 {
		cfg.Message.BaseRetryDelay = defaultBaseRetryDelay
	}
	if cfg.Message.MaxRetryDelay <= 0 {
		cfg.Message.MaxRetryDelay = defaultMaxRetryDelay
	}
	return cfg
}
