// Package postgres is the PostgreSQL data backend (pgx/v5).
// It implements the store ports used by the services.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/dashboard-api/internal/config"
	"github.com/boddenberg/dashboard-api/internal/infra/resilience"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Database is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const (
	idleTime    = 30 * time.Second
	hcPeriod    = 30 * time.Second
	pingTimeout = 5 * time.Second
)

// NewPool creates the shared connection pool and waits until the database
// answers a ping. The database container may start after the API, so the
// ping is retried with exponential backoff.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = idleTime
	poolConfig.HealthCheckPeriod = hcPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection to PostgreSQL: %w", err)
	}

	attempt := 0
	retry := resilience.Config{MaxRetries: cfg.ConnectRetries, InitialBackoff: cfg.ConnectBackoff}
	err = resilience.RetryWithBackoff(ctx, retry, func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := pool.Ping(pingCtx); err != nil {
			logger.Warn("postgres: not ready",
				zap.Int("attempt", attempt),
				zap.String("host", poolConfig.ConnConfig.Host),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL DB: %w", err)
	}

	logger.Info("postgres: connected",
		zap.String("host", poolConfig.ConnConfig.Host),
		zap.String("database", poolConfig.ConnConfig.Database),
		zap.Int32("max_conns", poolConfig.MaxConns),
	)
	return pool, nil
}
