package config

import (
	"strings"
	"time"
)

type RedisConfig struct {
	// Comma separated host:port list. Several hosts select a cluster client.
	Hosts           string        `mapstructure:"hosts"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Addrs splits Hosts, dropping blanks.
func (c RedisConfig) Addrs() []string {
	var addrs []string
	for _, h := range strings.Split(c.Hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			addrs = append(addrs, h)
		}
	}
	return addrs
}
