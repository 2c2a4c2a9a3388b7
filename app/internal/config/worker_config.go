package config

import "time"

type WorkerConfig struct {
	PoolSize              int           `mapstructure:"pool_size"`
	JobTimeout            time.Duration `mapstructure:"job_timeout"`
	BaseRetryDelay        time.Duration `mapstructure:"base_retry_delay"`
	MaxRetryDelay         time.Duration `mapstructure:"max_retry_delay"`
	RetryScanInterval     time.Duration `mapstructure:"retry_scan_interval"`
	HealthMonitorInterval time.Duration `mapstructure:"health_monitor_interval"`
}
