package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// memoryStore is a DocumentStore for tests.
type memoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	readErr  error
	writeErr error
	writes   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string][]byte)}
}

func (m *memoryStore) Read(_ context.Context, collection string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	doc, ok := m.docs[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

func (m *memoryStore) Write(_ context.Context, collection string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.docs[collection] = append([]byte(nil), doc...)
	m.writes++
	return nil
}

// sequentialIDs returns a generator producing id-1, id-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestService(t *testing.T) (*Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc := NewService(store, nil, WithIDGenerator(sequentialIDs()), WithClock(fixedClock))
	return svc, store
}

var errStoreDown = errors.New("dial tcp: connection refused")
