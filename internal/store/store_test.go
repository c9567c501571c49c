package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/customs/internal/config"
	"github.com/JonMunkholm/customs/internal/core"
)

type backend struct {
	name string
	open func(t *testing.T) Store
}

func backends(t *testing.T) []backend {
	list := []backend{
		{name: "memory", open: func(t *testing.T) Store { return NewMemory() }},
		{name: "badger", open: func(t *testing.T) Store {
			s, err := OpenBadger(t.TempDir())
			if err != nil {
				t.Fatalf("OpenBadger() error = %v", err)
			}
			return s
		}},
		{name: "sqlite", open: func(t *testing.T) Store {
			s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "customs.db"))
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			return s
		}},
	}

	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		list = append(list, backend{name: "postgres", open: func(t *testing.T) Store {
			s, err := OpenPostgres(context.Background(), config.StoreConfig{URL: url, MaxConns: 2, MinConns: 0})
			if err != nil {
				t.Fatalf("OpenPostgres() error = %v", err)
			}
			for _, c := range []string{"test-a", "test-b"} {
				if _, err := s.pool.Exec(context.Background(), `DELETE FROM documents WHERE collection = $1`, c); err != nil {
					t.Fatalf("cleanup: %v", err)
				}
			}
			return s
		}})
	}
	return list
}

func TestStoreReadWrite(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			defer s.Close()
			ctx := context.Background()

			got, err := s.Read(ctx, "test-a")
			if err != nil {
				t.Fatalf("Read() unwritten error = %v", err)
			}
			if got != nil {
				t.Errorf("Read() unwritten = %q, want nil", got)
			}

			if err := s.Write(ctx, "test-a", []byte(`[{"id":"1"}]`)); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := s.Write(ctx, "test-b", []byte(`{"version":1}`)); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := s.Write(ctx, "test-a", []byte(`[{"id":"2"}]`)); err != nil {
				t.Fatalf("Write() overwrite error = %v", err)
			}

			got, err = s.Read(ctx, "test-a")
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !jsonEqual(t, got, []byte(`[{"id":"2"}]`)) {
				t.Errorf("Read(test-a) = %s, want overwritten document", got)
			}

			got, err = s.Read(ctx, "test-b")
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !jsonEqual(t, got, []byte(`{"version":1}`)) {
				t.Errorf("Read(test-b) = %s", got)
			}

			if err := s.Ping(ctx); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}

func TestStoreRejectsEmptyCollection(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			defer s.Close()

			if _, err := s.Read(context.Background(), " "); err == nil {
				t.Error("Read() with blank collection should fail")
			}
			if err := s.Write(context.Background(), "", []byte("{}")); err == nil {
				t.Error("Write() with blank collection should fail")
			}
		})
	}
}

func TestStoreBacksService(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			if b.name == "postgres" {
				t.Skip("service round trip uses real collections")
			}
			s := b.open(t)
			defer s.Close()
			ctx := context.Background()

			svc := core.NewService(s, nil)
			d, err := svc.CreateDeclaration(ctx, core.DeclarationInput{
				BillNumber: core.Text("HBL-1"),
				Importer:   &core.PartyInput{Name: core.Text("Harbour Foods")},
				Items:      []core.ItemInput{{Cost: core.Text("10")}},
			})
			if err != nil {
				t.Fatalf("CreateDeclaration() error = %v", err)
			}

			got, err := svc.GetDeclaration(ctx, d.ID)
			if err != nil {
				t.Fatalf("GetDeclaration() error = %v", err)
			}
			if got.BillNumber != "HBL-1" || len(got.Items) != 1 {
				t.Errorf("GetDeclaration() = %+v", got)
			}

			importers, err := svc.ListImporters(ctx)
			if err != nil {
				t.Fatalf("ListImporters() error = %v", err)
			}
			if len(importers) != 1 {
				t.Errorf("ListImporters() = %d, want 1", len(importers))
			}
		})
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Write(ctx, "test-a", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	got, err := s.Read(ctx, "test-a")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("Read() = %s, want persisted document", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.StoreConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.StoreConfig{Driver: "memory", Timeout: time.Second}},
		{name: "sqlite", cfg: config.StoreConfig{Driver: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "nested", "c.db")}},
		{name: "badger", cfg: config.StoreConfig{Driver: "badger", BadgerDir: t.TempDir()}},
		{name: "unknown driver", cfg: config.StoreConfig{Driver: "mysql"}, wantErr: true},
		{name: "sqlite without path", cfg: config.StoreConfig{Driver: "sqlite"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer s.Close()
			if err := s.Write(ctx, "test-a", []byte(`{}`)); err != nil {
				t.Errorf("Write() error = %v", err)
			}
		})
	}
}

func TestWithTimeoutBoundsContext(t *testing.T) {
	probe := &deadlineProbe{}
	s := WithTimeout(probe, 50*time.Millisecond)

	if _, err := s.Read(context.Background(), "test-a"); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !probe.sawDeadline {
		t.Error("Read() context had no deadline")
	}

	if same := WithTimeout(probe, 0); same != Store(probe) {
		t.Error("WithTimeout(0) should return the store unchanged")
	}
}

type deadlineProbe struct {
	Memory
	sawDeadline bool
}

func (d *deadlineProbe) Read(ctx context.Context, _ string) ([]byte, error) {
	_, d.sawDeadline = ctx.Deadline()
	return nil, nil
}
