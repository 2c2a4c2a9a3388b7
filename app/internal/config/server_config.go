package config

import "time"

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RouterConfig struct {
	// Comma separated list of origins allowed by CORS
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type BcryptConfig struct {
	Cost int `mapstructure:"cost"`
}

type ApiKeyConfig struct {
	// Comma separated list of keys accepted in the X-API-Key header
	Keys string `mapstructure:"keys"`
}
