// Package postgres provides PostgreSQL-backed persistence for player
// accounts and progression state.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/menagerie/internal/config"
)

// Pool wraps a pgx connection pool with service-specific helpers.
type Pool struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPool creates a connection pool from the database configuration and
// verifies connectivity with a ping.
//
// Precondition: cfg must have passed config validation.
// Postcondition: the returned Pool is ready for queries, or err is non-nil.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("database pool established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name))

	return &Pool{pool: pool, logger: logger}, nil
}

// Pgx exposes the underlying pgx pool for repositories.
func (p *Pool) Pgx() *pgxpool.Pool { return p.pool }

// Close releases all pooled connections.
func (p *Pool) Close() {
	p.pool.Close()
	p.logger.Info("database pool closed")
}
