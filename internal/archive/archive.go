package archive

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradeops/alpaca-export/internal/config"
	"github.com/tradeops/alpaca-export/internal/export"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS export_runs (
	run_id             UUID PRIMARY KEY,
	generated_at       TIMESTAMPTZ NOT NULL,
	output_dir         TEXT NOT NULL,
	orders_rows        INTEGER NOT NULL,
	activities_rows    INTEGER NOT NULL,
	positions_rows     INTEGER NOT NULL,
	orders_partial     BOOLEAN NOT NULL,
	activities_partial BOOLEAN NOT NULL,
	recorded_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertRun = `
INSERT INTO export_runs (
	run_id, generated_at, output_dir,
	orders_rows, activities_rows, positions_rows,
	orders_partial, activities_partial
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Store wraps a connection pool to the run-history database.
type Store struct {
	pool *pgxpool.Pool
}

// Connect creates a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	connStr := BuildConnString(cfg)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// EnsureSchema creates the export_runs table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createRunsTable); err != nil {
		return fmt.Errorf("create export_runs table: %w", err)
	}
	return nil
}

// RecordRun inserts one row describing a completed export run.
func (s *Store) RecordRun(ctx context.Context, sum *export.Summary) error {
	_, err := s.pool.Exec(ctx, insertRun,
		sum.RunID,
		sum.GeneratedAt,
		sum.OutputDir,
		sum.OrdersRows,
		sum.ActivitiesRows,
		sum.PositionsRows,
		sum.OrdersPartial,
		sum.ActivitiesPartial,
	)
	if err != nil {
		return fmt.Errorf("insert export run: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
