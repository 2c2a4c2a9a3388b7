package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/db"
)

func TestNewDBSQLite(t *testing.T) {
	cfg := config.ApplicationConfig{
		DatabaseConfig: config.DatabaseConfig{
			Protocol: config.ProtocolSQLite,
			URI:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		},
	}

	database, err := db.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, database.IsSQLite())
	assert.Same(t, database.PrimaryConn(), database.ReplicaConn())

	var one int
	require.NoError(t, database.NewRaw("SELECT 1").Scan(context.Background(), &one))
	assert.Equal(t, 1, one)

	// Replica reads go to the same pool.
	one = 0
	require.NoError(t, database.ReplicaNewSelect().ColumnExpr("1").Scan(context.Background(), &one))
	assert.Equal(t, 1, one)

	assert.NoError(t, database.Close())
}
