// Package postgres persists resolved attacks to PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/dfcombat/internal/config"
)

// ErrSchemaMissing is returned by Ready when the attack_log table has not been migrated.
var ErrSchemaMissing = errors.New("attack_log table missing; run cmd/migrate first")

// Pool wraps the attack log's pgx connection pool.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool creates a new PostgreSQL connection pool from the given configuration.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error. The pool is ready
// for queries upon successful return.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
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

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Health checks that the database is reachable within the given timeout.
//
// Precondition: The pool must not be closed.
// Postcondition: Returns nil if the database responds within the timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases all pool resources.
//
// Postcondition: The pool is no longer usable after calling Close.
func (p *Pool) Close() {
	p.pool.Close()
}

// Ready reports whether the attack log schema has been migrated.
//
// Postcondition: Returns ErrSchemaMissing when attack_log does not exist.
func (p *Pool) Ready(ctx context.Context) error {
	var table *string
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('attack_log')::text`).Scan(&table); err != nil {
		return fmt.Errorf("checking attack log schema: %w", err)
	}
	if table == nil {
		return ErrSchemaMissing
	}
	return nil
}

// AttackLog returns a repository over the pool.
func (p *Pool) AttackLog() *AttackLogRepository {
	return NewAttackLogRepository(p.pool)
}
