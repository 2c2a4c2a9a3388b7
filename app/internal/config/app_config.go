package config

import "time"

type AppConfig struct {
	// User assumed when a request carries no X-User-ID header
	DefaultUserID string `mapstructure:"default_user_id"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
	SeedOnStart   bool   `mapstructure:"seed_on_start"`
}

type ProgressConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type NotifierConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	Enabled                    bool `mapstructure:"enabled"`
	QuoteCalculationsPerMinute int  `mapstructure:"quote_calculations_per_minute"`
}

type SchedulerConfig struct {
	ConcurrentJobs          uint          `mapstructure:"concurrent_jobs"`
	PaymentReminderInterval time.Duration `mapstructure:"payment_reminder_interval"`
	// Upcoming payments due within this window get a reminder
	PaymentReminderWindow time.Duration `mapstructure:"payment_reminder_window"`
	// How long a task run holds its distributed lock
	LockExpiry time.Duration `mapstructure:"lock_expiry"`
}
