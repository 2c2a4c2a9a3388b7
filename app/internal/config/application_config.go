package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

// bindEnv binds an environment variable with an optional default value
func bindEnv(configKey, envKey string, defaultValue ...interface{}) {
	if len(defaultValue) > 0 {
		viper.SetDefault(configKey, defaultValue[0])
	}
	viper.BindEnv(configKey, envKey)
}

type ApplicationConfig struct {
	ServerConfig    ServerConfig    `mapstructure:"server"`
	DatabaseConfig  DatabaseConfig  `mapstructure:"database"`
	RedisConfig     RedisConfig     `mapstructure:"redis"`
	RouterConfig    RouterConfig    `mapstructure:"router"`
	WorkerConfig    WorkerConfig    `mapstructure:"worker"`
	SchedulerConfig SchedulerConfig `mapstructure:"scheduler"`
	AwsConfig       AwsConfig       `mapstructure:"aws"`
	BcryptConfig    BcryptConfig    `mapstructure:"bcrypt"`
	ApiKeyConfig    ApiKeyConfig    `mapstructure:"api_key"`
	NotifierConfig  NotifierConfig  `mapstructure:"notifier"`
	RateLimitConfig RateLimitConfig `mapstructure:"rate_limit"`
	ProgressConfig  ProgressConfig  `mapstructure:"progress"`
	AppConfig       AppConfig       `mapstructure:"app"`
}

func ReadApplicationConfig(env ctxutil.AppMode, logger *zap.Logger) (cfg ApplicationConfig, err error) {
	if env == "" {
		env = ctxutil.AppModeLocal
	}
	confFileName := fmt.Sprintf("config-%s", env)

	viper.SetConfigName(confFileName)
	viper.SetConfigType("yaml")

	configPath := "./config"
	if env == ctxutil.AppModeTest {
		configPath = "../../../config"
	}
	viper.AddConfigPath(configPath)
	// For tests in shallower and nested packages
	viper.AddConfigPath("../../config")
	viper.AddConfigPath("../../../../config")

	if err := viper.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("error reading config file: %v", err)
	} else {
		logger.Info(
			"using config",
			zap.String("file", confFileName),
		)
	}
	viper.AutomaticEnv()

	// Server
	bindEnv("server.port", "SERVER_PORT", 8081)
	bindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT", "30s")

	// Database
	bindEnv("database.protocol", "DB_PROTOCOL")
	bindEnv("database.uri", "DB_URI")
	bindEnv("database.url", "DB_URL")
	bindEnv("database.replica_url", "DB_REPLICA_URL")
	bindEnv("database.name", "DB_NAME")
	bindEnv("database.port", "DB_PORT")
	bindEnv("database.username", "DB_USERNAME")
	bindEnv("database.password", "DB_PASSWORD")
	bindEnv("database.ssl_mode", "SSL_MODE")
	bindEnv("database.max_db_conns", "DB_MAX_DB_CONNS")
	bindEnv("database.max_idle_db_conns", "DB_MAX_IDLE_DB_CONNS")
	bindEnv("database.max_conn_lifetime", "DB_MAX_CONN_LIFETIME")
	bindEnv("database.max_conn_idle_time", "DB_MAX_CONN_IDLE_TIME")

	// Redis
	bindEnv("redis.hosts", "REDIS_HOSTS")
	bindEnv("redis.password", "REDIS_PASSWORD")
	bindEnv("redis.pool_size", "REDIS_POOL_SIZE")
	bindEnv("redis.min_idle_conns", "REDIS_MIN_IDLE_CONNS")
	bindEnv("redis.max_idle_conns", "REDIS_MAX_IDLE_CONNS")
	bindEnv("redis.write_timeout", "REDIS_WRITE_TIMEOUT")
	bindEnv("redis.read_timeout", "REDIS_READ_TIMEOUT")
	bindEnv("redis.conn_max_lifetime", "REDIS_CONN_MAX_LIFETIME")

	// AWS
	bindEnv("aws.region", "AWS_REGION")
	bindEnv("aws.endpoint", "AWS_ENDPOINT")
	bindEnv("aws.sqs.queue_urls.claim_event_queue", "AWS_SQS_CLAIM_EVENT_QUEUE_URL")
	bindEnv("aws.sqs.polling.max_messages", "AWS_SQS_MAX_MESSAGES")
	bindEnv("aws.sqs.polling.wait_time_seconds", "AWS_SQS_WAIT_TIME_SECONDS")
	bindEnv("aws.sqs.polling.visibility_timeout_seconds", "AWS_SQS_VISIBILITY_TIMEOUT_SECONDS")
	bindEnv("aws.sqs.polling.polling_interval", "AWS_SQS_POLLING_INTERVAL")
	bindEnv("aws.sqs.message.max_retries", "AWS_SQS_MAX_RETRIES")
	bindEnv("aws.sqs.message.base_retry_delay", "AWS_SQS_BASE_RETRY_DELAY")
	bindEnv("aws.sqs.message.max_retry_delay", "AWS_SQS_MAX_RETRY_DELAY")

	// Worker
	bindEnv("worker.pool_size", "WORKER_POOL_SIZE", 2)
	bindEnv("worker.job_timeout", "WORKER_JOB_TIMEOUT", "5m")
	bindEnv("worker.base_retry_delay", "WORKER_BASE_RETRY_DELAY", "30s")
	bindEnv("worker.max_retry_delay", "WORKER_MAX_RETRY_DELAY", "10m")
	bindEnv("worker.retry_scan_interval", "WORKER_RETRY_SCAN_INTERVAL", "1m")
	bindEnv("worker.health_monitor_interval", "WORKER_HEALTH_MONITOR_INTERVAL", "2m")

	// Scheduler
	bindEnv("scheduler.concurrent_jobs", "SCHEDULER_CONCURRENT_JOBS", 2)
	bindEnv("scheduler.payment_reminder_interval", "SCHEDULER_PAYMENT_REMINDER_INTERVAL", "1h")
	bindEnv("scheduler.payment_reminder_window", "SCHEDULER_PAYMENT_REMINDER_WINDOW", "168h")

	// Router
	bindEnv("router.allowed_origins", "ROUTER_ALLOWED_ORIGINS")

	// Bcrypt
	bindEnv("bcrypt.cost", "BCRYPT_COST")

	// API keys used by claim management actions
	bindEnv("api_key.keys", "API_KEYS")

	// Notifier
	bindEnv("notifier.webhook_url", "NOTIFIER_WEBHOOK_URL")
	bindEnv("notifier.timeout", "NOTIFIER_TIMEOUT", "10s")

	// Rate limit
	bindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED", false)
	bindEnv("rate_limit.quote_calculations_per_minute", "RATE_LIMIT_QUOTE_CALCULATIONS_PER_MINUTE", 30)

	// Progress
	bindEnv("progress.cache_ttl", "PROGRESS_CACHE_TTL", "1h")

	// App
	bindEnv("app.default_user_id", "APP_DEFAULT_USER_ID", "user1")
	bindEnv("app.auto_migrate", "APP_AUTO_MIGRATE", false)
	bindEnv("app.seed_on_start", "APP_SEED_ON_START", false)

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %s", err.Error())
	}

	return cfg, err
}
