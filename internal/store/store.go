package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chinook/internal/metrics"
)

var (
	// ErrArtistNotFound signals a missing artist record.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrTrackNotFound signals a missing track record.
	ErrTrackNotFound = errors.New("track not found")
)

// Store provides read-only catalog queries against the Chinook schema.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by *sql.Conn and *sql.DB.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withConn runs fn on a single pooled connection and always hands it back.
func (s *Store) withConn(ctx context.Context, fn func(q querier) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// Ping issues a trivial round trip to confirm the database answers queries.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(q querier) error {
		start := time.Now()
		var one int
		err := q.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
		metrics.RecordDBQuery("ping", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		return nil
	})
}

// parent describes a table whose rows own child rows.
type parent struct {
	table    string
	idColumn string
	notFound error
}

var (
	artistParent = parent{table: `"Artist"`, idColumn: `"ArtistId"`, notFound: ErrArtistNotFound}
	albumParent  = parent{table: `"Album"`, idColumn: `"AlbumId"`, notFound: ErrAlbumNotFound}
	trackParent  = parent{table: `"Track"`, idColumn: `"TrackId"`, notFound: ErrTrackNotFound}
)

// exists probes for id in the parent table and returns the parent's not-found error when absent.
func (s *Store) exists(ctx context.Context, q querier, p parent, id int64) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = %s`, p.table, p.idColumn, s.dialect.placeholder(1))

	start := time.Now()
	var one int
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	metrics.RecordDBQuery("exists", time.Since(start), ignoreNoRows(err))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p.notFound
		}
		return fmt.Errorf("probe %s: %w", p.table, err)
	}
	return nil
}

// listChildren verifies the parent exists before running the child listing on the same connection.
// A missing parent surfaces as its not-found error rather than an empty listing.
func listChildren[T any](ctx context.Context, s *Store, p parent, id int64, list func(q querier) ([]T, error)) ([]T, error) {
	var out []T
	err := s.withConn(ctx, func(q querier) error {
		if err := s.exists(ctx, q, p, id); err != nil {
			return err
		}
		var err error
		out, err = list(q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// queryAll runs a listing query and projects every row with scan.
func queryAll[T any](ctx context.Context, q querier, operation, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	start := time.Now()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery(operation, time.Since(start), err)
		return nil, fmt.Errorf("query %s: %w", operation, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			metrics.RecordDBQuery(operation, time.Since(start), err)
			return nil, fmt.Errorf("scan %s: %w", operation, err)
		}
		items = append(items, item)
	}

	err = rows.Err()
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate %s: %w", operation, err)
	}

	return items, nil
}

// queryOne runs a detail query; sql.ErrNoRows becomes notFound.
func queryOne[T any](ctx context.Context, s *Store, operation, query string, args []any, notFound error, scan func(scanner) (T, error)) (T, error) {
	var (
		out  T
		zero T
	)
	err := s.withConn(ctx, func(q querier) error {
		start := time.Now()
		item, err := scan(q.QueryRowContext(ctx, query, args...))
		metrics.RecordDBQuery(operation, time.Since(start), ignoreNoRows(err))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound
			}
			return fmt.Errorf("get %s: %w", operation, err)
		}
		out = item
		return nil
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
