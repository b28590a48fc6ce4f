package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/quizforge-backend/internal/config"
)

// NewPool opens the pool and pings it once so a bad DSN fails at startup
// rather than on the first ledger query.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	params := poolCfg.ConnConfig.RuntimeParams
	if cfg.AppName != "" {
		params["application_name"] = cfg.AppName
	}
	// Milliseconds; the server takes a bare integer in that unit.
	if ms := cfg.StatementTimeout.Milliseconds(); ms > 0 {
		params["statement_timeout"] = strconv.FormatInt(ms, 10)
	}

	return poolCfg, nil
}
