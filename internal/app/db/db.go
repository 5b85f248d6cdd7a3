/*
Package db opens the PostgreSQL connection pool, applies the embedded goose
migrations and exposes the pool to GORM.
*/
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agora/internal/pkg/logx"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Database bundles the pgx pool with the GORM handle layered on top of it.
type Database struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB

	sqlDB *sql.DB
}

// Open connects to dsn, runs migrations and returns a GORM handle sharing the pool.
func Open(dsn string, debug bool) (*Database, error) {
	pool, err := NewPool(dsn)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), NewGormConfig(debug))
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return &Database{Pool: pool, Gorm: gormDB, sqlDB: sqlDB}, nil
}

// Close releases the GORM bridge and the underlying pool.
func (d *Database) Close() {
	if d.sqlDB != nil {
		if err := d.sqlDB.Close(); err != nil {
			logx.Error(err, "failed to close database bridge")
		}
	}
	d.Pool.Close()
}

// Ping checks that the pool can reach the server.
func (d *Database) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// NewPool initializes a new PostgreSQL connection pool and executes database migrations.
func NewPool(dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := runMigrations(sqlDB); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// runMigrations applies all pending migrations from the embedded file system.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logx.Info("Database migrations applied successfully.")
	return nil
}
