// Package store provides the whole-document stores behind core.DocumentStore.
//
// Every backend keeps one opaque JSON document per logical collection and
// replaces it wholesale on write. Reading a collection that was never
// written returns nil without error.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/customs/internal/config"
	"github.com/JonMunkholm/customs/internal/core"
)

// Store is a core.DocumentStore that owns resources.
type Store interface {
	core.DocumentStore
	Ping(ctx context.Context) error
	Close() error
}

// Open creates the backend selected by cfg.Driver. When cfg.Timeout is
// positive every read and write is bounded by it.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case config.DriverMemory:
		s = NewMemory()
	case config.DriverPostgres:
		s, err = OpenPostgres(ctx, cfg)
	case config.DriverBadger:
		s, err = OpenBadger(cfg.BadgerDir)
	case config.DriverSQLite:
		s, err = OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return WithTimeout(s, cfg.Timeout), nil
}

// WithTimeout bounds each call on s by d. A non-positive d returns s.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{Store: s, timeout: d}
}

type timeoutStore struct {
	Store
	timeout time.Duration
}

func (t *timeoutStore) Read(ctx context.Context, collection string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Store.Read(ctx, collection)
}

func (t *timeoutStore) Write(ctx context.Context, collection string, doc []byte) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Store.Write(ctx, collection, doc)
}

func validateCollection(collection string) error {
	if strings.TrimSpace(collection) == "" {
		return fmt.Errorf("collection name is required")
	}
	return nil
}
