package store

import (
	"context"
	"sync"
)

// Memory keeps documents in process memory. Contents are lost on exit.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, collection string) ([]byte, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

func (m *Memory) Write(_ context.Context, collection string, doc []byte) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[collection] = append([]byte(nil), doc...)
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }
