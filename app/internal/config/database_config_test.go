package config_test

import (
	"testing"

	"backend/insurance-platform/app/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfigConnectionStrings(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		wantPrimary string
		wantReplica bool
	}{
		{
			name: "postgres with credentials",
			cfg: config.DatabaseConfig{
				Protocol: config.ProtocolPostgres, URL: "db", ReplicaURL: "db-replica", Port: 5432,
				Name: "insurance", Username: "app", Password: "p@ss word", SslMode: "disable",
			},
			wantPrimary: "postgres://app:p%40ss+word@db:5432/insurance?sslmode=disable",
			wantReplica: true,
		},
		{
			name: "postgres without credentials",
			cfg: config.DatabaseConfig{
				Protocol: config.ProtocolPostgres, URL: "localhost", Port: 5432, Name: "insurance", SslMode: "disable",
			},
			wantPrimary: "postgres://localhost:5432/insurance?sslmode=disable",
		},
		{
			name:        "explicit uri wins",
			cfg:         config.DatabaseConfig{Protocol: config.ProtocolPostgres, URI: "postgres://x/y", URL: "ignored"},
			wantPrimary: "postgres://x/y",
		},
		{
			name:        "sqlite by name",
			cfg:         config.DatabaseConfig{Protocol: config.ProtocolSQLite, Name: "insurance.db", ReplicaURL: "ignored"},
			wantPrimary: "file:insurance.db?cache=shared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPrimary, tt.cfg.PrimaryConnectionString())
			assert.Equal(t, tt.wantReplica, tt.cfg.HasReplica())
		})
	}
}

func TestAwsConfigSQSEnabled(t *testing.T) {
	var cfg config.AwsConfig
	assert.False(t, cfg.SQSEnabled())

	cfg.Sqs.QueueURLs.ClaimEventQueue = "http://localhost:4566/000000000000/claim-events"
	assert.True(t, cfg.SQSEnabled())
}
