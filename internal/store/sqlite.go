package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite stores each collection as one row in an embedded SQLite file.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the
// documents table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

func (s *SQLite) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	var body []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ?`, collection,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return body, nil
}

func (s *SQLite) Write(ctx context.Context, collection string, doc []byte) error {
	if err := validateCollection(collection); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO documents (collection, body, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(collection) DO UPDATE
		 SET body = excluded.body, updated_at = excluded.updated_at`,
		collection, doc, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Ping checks the database handle.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close releases the underlying SQLite connection.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
