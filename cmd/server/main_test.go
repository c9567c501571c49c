package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/customs/internal/core"
	"github.com/JonMunkholm/customs/internal/store"
)

type countingCloser struct {
	closes int
	err    error
}

func (c *countingCloser) Close() error {
	c.closes++
	return c.err
}

func TestCloseStore(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"clean close", nil},
		{"close error is logged", errors.New("flush failed")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &countingCloser{err: tt.err}
			closeStore(c)
			if c.closes != 1 {
				t.Errorf("Close() called %d times, want 1", c.closes)
			}
		})
	}
}

func TestSeedTariffs(t *testing.T) {
	ctx := context.Background()
	service := core.NewService(store.NewMemory(), nil)

	if err := seedTariffs(ctx, service, filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("seedTariffs() with a missing file returned nil error")
	}

	path := filepath.Join(t.TempDir(), "tariffs.csv")
	if err := os.WriteFile(path, []byte("Code,Description,Unit\n0402.10,Milk,kg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := seedTariffs(ctx, service, path); err != nil {
		t.Fatalf("seedTariffs() error = %v", err)
	}
	tariffs, err := service.ListTariffs(ctx)
	if err != nil {
		t.Fatalf("ListTariffs() error = %v", err)
	}
	if len(tariffs) != 1 {
		t.Errorf("ListTariffs() = %d definitions, want 1", len(tariffs))
	}
}
