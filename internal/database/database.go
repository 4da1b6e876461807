// Package database opens the catalog connection pool and gates startup on its readiness.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// ErrNotReady is returned when the database does not answer before the wait budget runs out.
var ErrNotReady = errors.New("database not ready in time")

const pingTimeout = 5 * time.Second

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
}

// Open creates a pool for driver ("pgx", "postgres" or "sqlite3") without contacting the server.
func Open(driver, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// WaitReady pings db every interval until it answers or timeout elapses.
// Authentication failures are returned immediately since retrying cannot fix them.
func WaitReady(ctx context.Context, db *sql.DB, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			log.Info().Int("attempts", attempt).Msg("database ready")
			return nil
		}
		if isAuthFailure(lastErr) {
			return fmt.Errorf("connect database: %w", lastErr)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Now().Add(interval).After(deadline) {
			break
		}

		log.Info().Err(lastErr).Int("attempt", attempt).Msg("Waiting for database...")

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w: %v", ErrNotReady, lastErr)
}

// isAuthFailure reports SQLSTATE class 28 (invalid authorization) from either Postgres driver.
func isAuthFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "28"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "28"
	}

	return false
}
