package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonMunkholm/customs/internal/config"
	"github.com/google/uuid"
)

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.New().String()
}

// Service provides the core business logic for customs declarations.
type Service struct {
	store      DocumentStore
	reconciler *Reconciler
	limiter    *DocumentLimiter

	newID func() string
	now   func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how new identifiers are issued.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service backed by store. cfg may be nil, in which
// case default limits apply.
func NewService(store DocumentStore, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		store: store,
		newID: NewID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg != nil {
		s.limiter = NewDocumentLimiter(cfg.Document.MaxConcurrent, cfg.Document.MaxWaitTime)
	} else {
		s.limiter = NewDocumentLimiter(DefaultMaxConcurrentDocuments, DefaultMaxWaitTime)
	}
	s.reconciler = NewReconciler(s.newID, s.now)
	return s
}

// Limiter returns the document generation limiter.
func (s *Service) Limiter() *DocumentLimiter {
	return s.limiter
}

// load decodes collection into v. A collection that was never written
// leaves v untouched.
func (s *Service) load(ctx context.Context, collection string, v any) error {
	raw, err := s.store.Read(ctx, collection)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStoreRead, collection, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrStoreRead, collection, err)
	}
	return nil
}

// save encodes v and writes it as the whole collection document.
func (s *Service) save(ctx context.Context, collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrStoreWrite, collection, err)
	}
	if err := s.store.Write(ctx, collection, raw); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStoreWrite, collection, err)
	}
	return nil
}

func (s *Service) loadDeclarations(ctx context.Context) ([]Declaration, error) {
	var decls []Declaration
	if err := s.load(ctx, CollectionDeclarations, &decls); err != nil {
		return nil, err
	}
	return decls, nil
}

func (s *Service) loadPartyBook(ctx context.Context) (*PartyBook, error) {
	book := &PartyBook{}
	if err := s.load(ctx, CollectionImporters, &book.Importers); err != nil {
		return nil, err
	}
	if err := s.load(ctx, CollectionExporters, &book.Exporters); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *Service) savePartyBook(ctx context.Context, book *PartyBook) error {
	if !book.Changed() {
		return nil
	}
	if err := s.save(ctx, CollectionImporters, book.Importers); err != nil {
		return err
	}
	return s.save(ctx, CollectionExporters, book.Exporters)
}

// ListImporters returns every stored importer.
func (s *Service) ListImporters(ctx context.Context) ([]Party, error) {
	book, err := s.loadPartyBook(ctx)
	if err != nil {
		return nil, err
	}
	if book.Importers == nil {
		return []Party{}, nil
	}
	return book.Importers, nil
}

// ListExporters returns stored exporters, restricted to those owned by
// importerID when it is not empty.
func (s *Service) ListExporters(ctx context.Context, importerID string) ([]Party, error) {
	book, err := s.loadPartyBook(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Party, 0, len(book.Exporters))
	for _, p := range book.Exporters {
		if importerID != "" && p.ImporterID != importerID {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// Tariffs loads the tariff reference table.
func (s *Service) Tariffs(ctx context.Context) (*TariffTable, error) {
	var defs []TariffDefinition
	if err := s.load(ctx, CollectionTariffs, &defs); err != nil {
		return nil, err
	}
	return NewTariffTable(defs), nil
}

// ListTariffs returns every tariff definition sorted by code.
func (s *Service) ListTariffs(ctx context.Context) ([]TariffDefinition, error) {
	table, err := s.Tariffs(ctx)
	if err != nil {
		return nil, err
	}
	return table.All(), nil
}
