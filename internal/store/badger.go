package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "collection/"

// Badger stores each collection under its own key in an embedded badger
// database.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens or creates a badger database in dir.
func OpenBadger(dir string) (*Badger, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Badger{db: db}, nil
}

func badgerKey(collection string) []byte {
	return []byte(badgerKeyPrefix + collection)
}

func (b *Badger) Read(_ context.Context, collection string) ([]byte, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	var doc []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(collection))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return doc, nil
}

func (b *Badger) Write(_ context.Context, collection string, doc []byte) error {
	if err := validateCollection(collection); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(collection), doc)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Ping reports whether the database is still open.
func (b *Badger) Ping(context.Context) error {
	if b.db.IsClosed() {
		return fmt.Errorf("badger db is closed")
	}
	return nil
}

// Close flushes and closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}
