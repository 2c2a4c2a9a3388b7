package config

import (
	"fmt"
	"net/url"
)

const (
	ProtocolPostgres = "postgres"
	ProtocolSQLite   = "sqlite"
)

type DatabaseConfig struct {
	// Full DSN. For sqlite this is the file name or a "file:...?mode=memory" URI.
	URI             string `mapstructure:"uri"`
	Protocol        string `mapstructure:"protocol"`
	URL             string `mapstructure:"url"`
	ReplicaURL      string `mapstructure:"replica_url"`
	Name            string `mapstructure:"name"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Port            int    `mapstructure:"port"`
	SslMode         string `mapstructure:"ssl_mode"`
	MaxDBConns      int    `mapstructure:"max_db_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_db_conns"`
	MaxConnLifetime int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime int    `mapstructure:"max_conn_idle_time"`
}

// IsSQLite reports whether the embedded sqlite driver should be used.
func (c DatabaseConfig) IsSQLite() bool {
	return c.Protocol == ProtocolSQLite
}

// HasReplica reports whether reads can be routed to a separate replica.
func (c DatabaseConfig) HasReplica() bool {
	return !c.IsSQLite() && c.ReplicaURL != ""
}

func (c DatabaseConfig) PrimaryConnectionString() string {
	if c.URI != "" {
		return c.URI
	}
	if c.IsSQLite() {
		return fmt.Sprintf("file:%s?cache=shared", c.Name)
	}
	return c.connectionString(c.URL)
}

func (c DatabaseConfig) ReplicaConnectionString() string {
	return c.connectionString(c.ReplicaURL)
}

func (c DatabaseConfig) connectionString(host string) string {
	if c.Username != "" && c.Password != "" {
		return fmt.Sprintf(
			"%s://%s:%s@%s:%d/%s?sslmode=%s",
			c.Protocol, c.Username, url.QueryEscape(c.Password), host, c.Port, c.Name, c.SslMode,
		)
	}
	return fmt.Sprintf(
		"%s://%s:%d/%s?sslmode=%s",
		c.Protocol, host, c.Port, c.Name, c.SslMode,
	)
}
