package core

import "time"

// PartyBook is an in-memory snapshot of the importer and exporter
// collections. The reconciler mutates it; the caller writes it back when
// Changed reports true.
type PartyBook struct {
	Importers []Party
	Exporters []Party

	changed bool
}

// Changed reports whether any party was created or updated.
func (b *PartyBook) Changed() bool {
	return b.changed
}

func (b *PartyBook) importerIndex(id string) int {
	for i := range b.Importers {
		if b.Importers[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *PartyBook) exporterIndex(id string) int {
	for i := range b.Exporters {
		if b.Exporters[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *PartyBook) exporterIndexByTIN(tin, importerID string) int {
	for i := range b.Exporters {
		if b.Exporters[i].TIN == tin && b.Exporters[i].ImporterID == importerID {
			return i
		}
	}
	return -1
}

// Reconciler resolves importer and exporter payloads to stable parties.
//
// The rules are fixed:
//   - Importers are matched by ID only. A known ID gets its TIN replaced by
//     the latest request; an unknown ID is stored as sent. Without an ID a
//     new importer is always created.
//   - Exporters are matched by ID first, then by (TIN, owning importer).
//     Name-only payloads always create a new exporter.
//   - A payload with no ID, TIN or name is left unresolved.
type Reconciler struct {
	newID func() string
	now   func() time.Time
}

// NewReconciler creates a Reconciler. Nil functions fall back to NewID and
// time.Now.
func NewReconciler(newID func() string, now func() time.Time) *Reconciler {
	if newID == nil {
		newID = NewID
	}
	if now == nil {
		now = time.Now
	}
	return &Reconciler{newID: newID, now: now}
}

// ResolveImporter resolves an importer payload against book and returns the
// reference to embed in a declaration. The reference is empty when the
// payload carries nothing to resolve.
func (r *Reconciler) ResolveImporter(book *PartyBook, in *PartyInput) PartyRef {
	if in == nil {
		return PartyRef{}
	}

	now := r.now().UTC()

	if id := in.ID.Value(); id != "" {
		if i := book.importerIndex(id); i >= 0 {
			p := &book.Importers[i]
			p.TIN = in.TIN.Value()
			p.UpdatedAt = now
			book.changed = true
			return refTo(*p)
		}
		return r.addImporter(book, id, in, now)
	}

	if !in.TIN.Present() && !in.Name.Present() {
		return PartyRef{}
	}
	return r.addImporter(book, r.newID(), in, now)
}

// ResolveExporter resolves an exporter payload against book. importerID is
// the already-resolved importer of the same declaration and may be empty.
func (r *Reconciler) ResolveExporter(book *PartyBook, in *PartyInput, importerID string) PartyRef {
	if in == nil {
		return PartyRef{}
	}

	now := r.now().UTC()

	if id := in.ID.Value(); id != "" {
		if i := book.exporterIndex(id); i >= 0 {
			p := &book.Exporters[i]
			mergeParty(p, in)
			if p.ImporterID == "" {
				p.ImporterID = importerID
			}
			p.UpdatedAt = now
			book.changed = true
			return refTo(*p)
		}
		return r.addExporter(book, id, in, importerID, now)
	}

	if tin := in.TIN.Value(); tin != "" {
		if i := book.exporterIndexByTIN(tin, importerID); i >= 0 {
			p := &book.Exporters[i]
			overwriteDescriptive(p, in)
			p.UpdatedAt = now
			book.changed = true
			return refTo(*p)
		}
		return r.addExporter(book, r.newID(), in, importerID, now)
	}

	// No stable number to match on: the same trade name may legitimately
	// belong to distinct exporters.
	if in.Name.Present() {
		return r.addExporter(book, r.newID(), in, importerID, now)
	}

	return PartyRef{}
}

func (r *Reconciler) addImporter(book *PartyBook, id string, in *PartyInput, now time.Time) PartyRef {
	p := partyFromInput(id, in)
	p.CreatedAt = now
	p.UpdatedAt = now
	book.Importers = append(book.Importers, p)
	book.changed = true
	return refTo(p)
}

func (r *Reconciler) addExporter(book *PartyBook, id string, in *PartyInput, importerID string, now time.Time) PartyRef {
	p := partyFromInput(id, in)
	p.ImporterID = importerID
	p.CreatedAt = now
	p.UpdatedAt = now
	book.Exporters = append(book.Exporters, p)
	book.changed = true
	return refTo(p)
}

// mergeParty copies every field present in the payload onto p.
func mergeParty(p *Party, in *PartyInput) {
	set := func(dst *string, f Field) {
		if f.Valid {
			*dst = f.Value()
		}
	}
	set(&p.Name, in.Name)
	set(&p.TIN, in.TIN)
	set(&p.Address, in.Address)
	set(&p.City, in.City)
	set(&p.State, in.State)
	set(&p.PostalCode, in.PostalCode)
	set(&p.Country, in.Country)
	set(&p.Phone, in.Phone)
}

// overwriteDescriptive replaces the descriptive fields of p, blanking any
// the payload omits.
func overwriteDescriptive(p *Party, in *PartyInput) {
	p.Name = in.Name.Value()
	p.Address = in.Address.Value()
	p.City = in.City.Value()
	p.State = in.State.Value()
	p.PostalCode = in.PostalCode.Value()
	p.Country = in.Country.Value()
	p.Phone = in.Phone.Value()
}

func refTo(p Party) PartyRef {
	return PartyRef{ID: p.ID, Number: p.TIN, Name: p.Name}
}
