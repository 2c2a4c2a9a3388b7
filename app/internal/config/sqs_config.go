package config

import (
	"time"
)

// SQSConfig configures the claim event listener.
type SQSConfig struct {
	QueueURLs SQSQueueURLs     `mapstructure:"queue_urls"`
	Polling   SQSPollingConfig `mapstructure:"polling"`
	Message   SQSMessageConfig `mapstructure:"message"`
}

type SQSQueueURLs struct {
	// Queue carrying claim-management events (review started, settled)
	ClaimEventQueue string `mapstructure:"claim_event_queue"`
}

type SQSPollingConfig struct {
	MaxMessages              int           `mapstructure:"max_messages"`
	WaitTimeSeconds          int           `mapstructure:"wait_time_seconds"`
	VisibilityTimeoutSeconds int           `mapstructure:"visibility_timeout_seconds"`
	PollingInterval          time.Duration `mapstructure:"polling_interval"`
}

type SQSMessageConfig struct {
	MaxRetries     int           `mapstructure:"max_retries"`
	BaseRetryDelay time.Duration `mapstructure:"base_retry_delay"`
	MaxRetryDelay  time.Duration `mapstructure:"max_retry_delay"`
}
