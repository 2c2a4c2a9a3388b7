package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
	sqlTrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/database/sql"
	_ "modernc.org/sqlite"

	"backend/insurance-platform/app/internal/config"
)

const traceServiceName = "db-insurance-platform"

var registerTracedDriver sync.Once

// DB is the primary pool; the Replica* helpers read from the replica.
// Without a configured replica both point at the same pool.
type DB struct {
	*bun.DB
	replica *bun.DB
}

var _ bun.IDB = (*DB)(nil)

func newDB(primary, replica *bun.DB) *DB {
	return &DB{DB: primary, replica: replica}
}

func NewDB(cfg config.ApplicationConfig, logger *zap.Logger) (db *DB, err error) {
	dbCfg := cfg.DatabaseConfig
	if dbCfg.IsSQLite() {
		return NewSQLiteDB(dbCfg.PrimaryConnectionString(), logger)
	}

	priDb, err := setupPostgres("primary", dbCfg.PrimaryConnectionString(), dbCfg, logger)
	if err != nil {
		return nil, err
	}
	if !dbCfg.HasReplica() {
		return newDB(priDb, priDb), nil
	}

	replDb, err := setupPostgres("replica", dbCfg.ReplicaConnectionString(), dbCfg, logger)
	if err != nil {
		// Attempt to close the primary DB if the replica setup fails
		_ = priDb.Close()
		return nil, err
	}

	return newDB(priDb, replDb), nil
}

// NewSQLiteDB opens an embedded sqlite database. A single connection is kept
// open so in-memory databases survive for the lifetime of the pool.
func NewSQLiteDB(dsn string, logger *zap.Logger) (*DB, error) {
	sqlDb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	sqlDb.SetMaxOpenConns(1)
	sqlDb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqlDb, sqlitedialect.New(), bun.WithDiscardUnknownColumns())
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}
	logger.Info("successfully opened sqlite database", zap.String("dsn", dsn))

	return newDB(db, db), nil
}

func setupPostgres(connType, dsn string, cfg config.DatabaseConfig, logger *zap.Logger) (*bun.DB, error) {
	pgConnector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(30*time.Second),
	)
	registerTracedDriver.Do(func() {
		sqlTrace.Register("pgdriver", pgConnector.Driver(),
			sqlTrace.WithServiceName(traceServiceName),
			sqlTrace.WithAnalytics(true),
		)
	})
	dbConn := sqlTrace.OpenDB(pgConnector)
	dbConn.SetMaxOpenConns(cfg.MaxDBConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetConnMaxLifetime(time.Duration(cfg.MaxConnLifetime) * time.Second)
	dbConn.SetConnMaxIdleTime(time.Duration(cfg.MaxConnIdleTime) * time.Second)

	db := bun.NewDB(dbConn, pgdialect.New(), bun.WithDiscardUnknownColumns())
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", zap.String("type", connType), zap.Error(err))
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s: %w", connType, err)
	}
	logger.Info(
		"successfully connected to database",
		zap.String("type", connType),
		zap.Int("maxOpen", cfg.MaxDBConns),
		zap.Int("maxIdle", cfg.MaxIdleConns),
		zap.Int("maxLifetime", cfg.MaxConnLifetime),
		zap.Int("maxIdleTime", cfg.MaxConnIdleTime),
	)
	return db, nil
}

func (d *DB) Close() error {
	var errPrimary, errReplica error
	if d.DB != nil {
		errPrimary = d.DB.Close()
	}
	if d.replica != nil && d.replica != d.DB {
		errReplica = d.replica.Close()
	}
	return errors.Join(wrapClose("primary", errPrimary), wrapClose("replica", errReplica))
}

func wrapClose(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("error closing %s DB: %w", name, err)
}

func (d *DB) PrimaryConn() *bun.DB {
	return d.DB
}

func (d *DB) ReplicaConn() *bun.DB {
	return d.replica
}

// ReplicaNewSelect starts a select on the replica. Reads that must observe a
// write made in the same request use NewSelect instead.
func (d *DB) ReplicaNewSelect() *bun.SelectQuery {
	return d.replica.NewSelect()
}

// IsSQLite reports whether the primary pool uses the sqlite dialect.
func (d *DB) IsSQLite() bool {
	return d.Dialect().Name() == dialect.SQLite
}
