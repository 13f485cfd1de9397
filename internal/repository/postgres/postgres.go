package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msomdec/msgdrop/internal/domain"
)

// DB wraps a pgx connection pool and exposes the repositories backed by it.
// The pool is shared by all handlers for the process lifetime; each query
// scope-acquires a connection and releases it on every exit path.
type DB struct {
	Pool *pgxpool.Pool
}

// New connects to the Postgres database at the given URL.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Migrate applies the schema. Statements are idempotent, so re-running on
// startup is safe.
func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('text', 'file')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := d.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	d.Pool.Close()
	return nil
}

// Users returns the Postgres-backed user repository.
func (d *DB) Users() domain.UserRepository {
	return &UserRepository{pool: d.Pool}
}

// Messages returns the Postgres-backed message repository.
func (d *DB) Messages() domain.MessageRepository {
	return &MessageRepository{pool: d.Pool}
}
