package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/customs/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres stores each collection as one JSONB row.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool using cfg's pool sizing, verifies the
// connection and ensures the documents table exists.
func OpenPostgres(ctx context.Context, cfg config.StoreConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := NewPostgres(pool)
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgres wraps an existing pool. Call Migrate before first use.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the documents table if needed.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (p *Postgres) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	var body []byte
	err := p.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1`, collection,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return body, nil
}

func (p *Postgres) Write(ctx context.Context, collection string, doc []byte) error {
	if err := validateCollection(collection); err != nil {
		return err
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO documents (collection, body, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (collection) DO UPDATE
		 SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		collection, string(doc),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
