// Package database provides PostgreSQL connection management using pgx.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibridshopp01/booking-backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectAttempts = 5

// NewPool creates and validates a pgxpool connection pool.
// It retries a few times to accommodate the database container starting up.
func NewPool(ctx context.Context, cfg config.DB, log *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		log.Warn("db connect attempt failed",
			"attempt", attempt,
			"max_attempts", connectAttempts,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("connect to postgres: %w", err)
}

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id             BIGSERIAL PRIMARY KEY,
	name           VARCHAR(100) NOT NULL,
	phone          VARCHAR(20)  NOT NULL,
	email          VARCHAR(100),
	preferred_date DATE         NOT NULL,
	preferred_time VARCHAR(10)  NOT NULL,
	message        TEXT,
	dog_id         BIGINT,
	dog_name       VARCHAR(50),
	status         VARCHAR(20)  NOT NULL DEFAULT 'pending'
	               CHECK (status IN ('pending', 'confirmed', 'cancelled')),
	created_at     TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bookings_date_status_idx ON bookings (preferred_date, status);
CREATE INDEX IF NOT EXISTS bookings_created_at_idx ON bookings (created_at DESC);
`

// Migrate creates the bookings table and its indexes if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
