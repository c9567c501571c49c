package core

import (
	"context"

	"github.com/JonMunkholm/customs/internal/logging"
	"github.com/shopspring/decimal"
)

// allocateCharges recomputes freight and insurance for items in place.
// Shares follow declared cost when the net cost is positive; otherwise
// every item gets an equal share.
func allocateCharges(items []Item, v Valuation) {
	if len(items) == 0 {
		return
	}

	var freight, insurance []string
	if v.NetCost.IsPositive() {
		weights := make([]decimal.Decimal, len(items))
		for i := range items {
			weights[i] = items[i].Cost
		}
		freight = AllocateProportional(v.NetFreight, weights)
		insurance = AllocateProportional(v.NetInsurance, weights)
	} else {
		freight = AllocateEqually(v.NetFreight, len(items))
		insurance = AllocateEqually(v.NetInsurance, len(items))
	}

	for i := range items {
		items[i].Freight = freight[i]
		items[i].Insurance = insurance[i]
	}
}

// assignItemIDs issues a fresh identifier to every item without one.
func (s *Service) assignItemIDs(items []Item) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.newID()
		}
	}
}

// resolveParties runs the reconciler for the importer, then the exporter,
// which may depend on the resolved importer.
func (s *Service) resolveParties(ctx context.Context, book *PartyBook, in DeclarationInput) (PartyRef, PartyRef) {
	importer := s.reconciler.ResolveImporter(book, in.Importer)
	exporter := s.reconciler.ResolveExporter(book, in.Exporter, importer.ID)

	logging.FromContext(ctx).Debug("parties resolved",
		"importer_id", importer.ID,
		"exporter_id", exporter.ID,
	)
	return importer, exporter
}

func indexOfDeclaration(decls []Declaration, id string) int {
	for i := range decls {
		if decls[i].ID == id {
			return i
		}
	}
	return -1
}

// ListDeclarations returns every stored declaration in insertion order.
func (s *Service) ListDeclarations(ctx context.Context) ([]Declaration, error) {
	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return nil, err
	}
	if decls == nil {
		return []Declaration{}, nil
	}
	return decls, nil
}

// GetDeclaration returns one declaration.
func (s *Service) GetDeclaration(ctx context.Context, id string) (Declaration, error) {
	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return Declaration{}, err
	}
	i := indexOfDeclaration(decls, id)
	if i < 0 {
		return Declaration{}, &NotFoundError{Kind: "declaration", ID: id}
	}
	return decls[i], nil
}

// CreateDeclaration resolves the parties, computes item charges and appends
// the composed declaration to the store.
func (s *Service) CreateDeclaration(ctx context.Context, in DeclarationInput) (Declaration, error) {
	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return Declaration{}, err
	}

	id := in.ID.Value()
	if id != "" && indexOfDeclaration(decls, id) >= 0 {
		return Declaration{}, &ValidationError{Field: "id", Reason: "declaration already exists"}
	}
	if id == "" {
		id = s.newID()
	}

	book, err := s.loadPartyBook(ctx)
	if err != nil {
		return Declaration{}, err
	}

	importer, exporter := s.resolveParties(ctx, book, in)

	items := NormalizeItems(in.Items)
	s.assignItemIDs(items)
	valuation := normalizeValuation(in.Valuation)
	allocateCharges(items, valuation)

	now := s.now().UTC()
	d := Declaration{
		ID:            id,
		TransportMode: NormalizeTransportMode(in.TransportMode.Value()),
		BillNumber:    in.BillNumber.Value(),
		Importer:      importer,
		Exporter:      exporter,
		Packages:      normalizePackages(in.Packages),
		Valuation:     valuation,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.savePartyBook(ctx, book); err != nil {
		return Declaration{}, err
	}
	decls = append(decls, d)
	if err := s.save(ctx, CollectionDeclarations, decls); err != nil {
		return Declaration{}, err
	}

	mutationLogger(ctx).Info("declaration created",
		"declaration_id", d.ID,
		"importer_id", d.Importer.ID,
		"exporter_id", d.Exporter.ID,
		"items", len(d.Items),
	)
	return d, nil
}

// UpdateDeclaration replaces a declaration. Parties are resolved again.
// When in.Items is nil the stored items are kept and only their freight and
// insurance are recomputed against the new valuation.
func (s *Service) UpdateDeclaration(ctx context.Context, id string, in DeclarationInput) (Declaration, error) {
	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return Declaration{}, err
	}
	i := indexOfDeclaration(decls, id)
	if i < 0 {
		return Declaration{}, &NotFoundError{Kind: "declaration", ID: id}
	}
	prev := decls[i]

	book, err := s.loadPartyBook(ctx)
	if err != nil {
		return Declaration{}, err
	}

	importer, exporter := s.resolveParties(ctx, book, in)

	var items []Item
	if in.Items != nil {
		items = NormalizeItems(in.Items)
		s.assignItemIDs(items)
	} else {
		items = make([]Item, len(prev.Items))
		copy(items, prev.Items)
	}
	valuation := normalizeValuation(in.Valuation)
	allocateCharges(items, valuation)

	d := Declaration{
		ID:            prev.ID,
		TransportMode: NormalizeTransportMode(in.TransportMode.Value()),
		BillNumber:    in.BillNumber.Value(),
		Importer:      importer,
		Exporter:      exporter,
		Packages:      normalizePackages(in.Packages),
		Valuation:     valuation,
		Items:         items,
		CreatedAt:     prev.CreatedAt,
		UpdatedAt:     s.now().UTC(),
	}

	if err := s.savePartyBook(ctx, book); err != nil {
		return Declaration{}, err
	}
	decls[i] = d
	if err := s.save(ctx, CollectionDeclarations, decls); err != nil {
		return Declaration{}, err
	}

	mutationLogger(ctx).Info("declaration updated",
		"declaration_id", d.ID,
		"items", len(d.Items),
		"items_replaced", in.Items != nil,
	)
	return d, nil
}

// ReplaceItems swaps the whole item collection of a declaration.
//
// Incoming items whose ID matches a stored item keep that ID and replace it
// entirely. Any other incoming item is new and gets a fresh ID, even when
// it carries an unknown one. Stored items absent from the request are
// dropped. A nil slice is rejected; an empty slice clears the list.
func (s *Service) ReplaceItems(ctx context.Context, id string, in []ItemInput) (Declaration, error) {
	if in == nil {
		return Declaration{}, &ValidationError{Field: "items", Reason: "item list is required"}
	}

	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return Declaration{}, err
	}
	i := indexOfDeclaration(decls, id)
	if i < 0 {
		return Declaration{}, &NotFoundError{Kind: "declaration", ID: id}
	}
	d := decls[i]

	retained := make(map[string]bool, len(d.Items))
	for _, it := range d.Items {
		retained[it.ID] = true
	}

	items := NormalizeItems(in)
	used := make(map[string]bool, len(items))
	kept := 0
	for j := range items {
		if itemID := items[j].ID; retained[itemID] && !used[itemID] {
			used[itemID] = true
			kept++
			continue
		}
		items[j].ID = s.newID()
	}
	allocateCharges(items, d.Valuation)

	d.Items = items
	d.UpdatedAt = s.now().UTC()
	decls[i] = d
	if err := s.save(ctx, CollectionDeclarations, decls); err != nil {
		return Declaration{}, err
	}

	mutationLogger(ctx).Info("declaration items replaced",
		"declaration_id", d.ID,
		"items", len(items),
		"retained", kept,
		"dropped", len(retained)-kept,
	)
	return d, nil
}

// DeleteDeclaration removes one declaration.
func (s *Service) DeleteDeclaration(ctx context.Context, id string) error {
	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return err
	}
	i := indexOfDeclaration(decls, id)
	if i < 0 {
		return &NotFoundError{Kind: "declaration", ID: id}
	}

	decls = append(decls[:i], decls[i+1:]...)
	if err := s.save(ctx, CollectionDeclarations, decls); err != nil {
		return err
	}

	mutationLogger(ctx).Info("declaration deleted", "declaration_id", id)
	return nil
}

// DeleteDeclarations removes every declaration whose ID is in ids and
// returns how many were actually removed. Unknown IDs are ignored. A nil
// slice is rejected.
func (s *Service) DeleteDeclarations(ctx context.Context, ids []string) (int, error) {
	if ids == nil {
		return 0, &ValidationError{Field: "ids", Reason: "identifier list is required"}
	}

	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return 0, err
	}

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	before := len(decls)
	kept := decls[:0]
	for _, d := range decls {
		if !remove[d.ID] {
			kept = append(kept, d)
		}
	}
	deleted := before - len(kept)

	if deleted > 0 {
		if err := s.save(ctx, CollectionDeclarations, kept); err != nil {
			return 0, err
		}
	}

	mutationLogger(ctx).Info("declarations deleted",
		"requested", len(ids),
		"deleted", deleted,
	)
	return deleted, nil
}
