package core

import "context"

// DocumentJob is everything the document assembler needs for one
// generation: the master bill, the participating declarations in stored
// order, and read-only lookups for tariffs and parties.
type DocumentJob struct {
	MasterBill   MasterBill
	Declarations []Declaration

	tariffs   *TariffTable
	importers map[string]Party
	exporters map[string]Party
}

// NewDocumentJob builds a job from already loaded data. tariffs may be nil.
func NewDocumentJob(mb MasterBill, decls []Declaration, tariffs *TariffTable, importers, exporters []Party) *DocumentJob {
	if tariffs == nil {
		tariffs = NewTariffTable(nil)
	}
	job := &DocumentJob{
		MasterBill:   mb,
		Declarations: decls,
		tariffs:      tariffs,
		importers:    make(map[string]Party, len(importers)),
		exporters:    make(map[string]Party, len(exporters)),
	}
	for _, p := range importers {
		job.importers[p.ID] = p
	}
	for _, p := range exporters {
		job.exporters[p.ID] = p
	}
	return job
}

// Tariff looks up a tariff definition by code.
func (j *DocumentJob) Tariff(code string) (TariffDefinition, bool) {
	return j.tariffs.Lookup(code)
}

// Importer returns the stored importer with id.
func (j *DocumentJob) Importer(id string) (Party, bool) {
	p, ok := j.importers[id]
	return p, ok
}

// Exporter returns the stored exporter with id.
func (j *DocumentJob) Exporter(id string) (Party, bool) {
	p, ok := j.exporters[id]
	return p, ok
}

// CurrentMasterBill returns the stored master bill.
func (s *Service) CurrentMasterBill(ctx context.Context) (MasterBill, error) {
	var mb *MasterBill
	if err := s.load(ctx, CollectionMasterBill, &mb); err != nil {
		return MasterBill{}, err
	}
	if mb == nil {
		return MasterBill{}, &NotFoundError{Kind: "master bill"}
	}
	return *mb, nil
}

// PrepareDocument stores in as the new master bill and gathers the
// declarations named by ids. An empty ids selects every declaration.
// Unknown IDs are ignored and stored order is kept.
func (s *Service) PrepareDocument(ctx context.Context, in MasterBillInput, ids []string) (*DocumentJob, error) {
	var prev *MasterBill
	if err := s.load(ctx, CollectionMasterBill, &prev); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	mb := NormalizeMasterBill(in)
	mb.Version = 1
	mb.CreatedAt = now
	mb.UpdatedAt = now
	if prev != nil {
		mb.Version = prev.Version + 1
		mb.CreatedAt = prev.CreatedAt
	}

	if err := s.save(ctx, CollectionMasterBill, mb); err != nil {
		return nil, err
	}

	job, err := s.buildJob(ctx, mb, ids)
	if err != nil {
		return nil, err
	}

	mutationLogger(ctx).Info("master bill stored",
		"version", mb.Version,
		"bill_number", mb.Shipment.BillNumber,
		"declarations", len(job.Declarations),
	)
	return job, nil
}

// CurrentDocument gathers a job for the stored master bill without
// modifying it.
func (s *Service) CurrentDocument(ctx context.Context, ids []string) (*DocumentJob, error) {
	mb, err := s.CurrentMasterBill(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildJob(ctx, mb, ids)
}

func (s *Service) buildJob(ctx context.Context, mb MasterBill, ids []string) (*DocumentJob, error) {
	decls, err := s.loadDeclarations(ctx)
	if err != nil {
		return nil, err
	}
	decls = selectDeclarations(decls, ids)

	tariffs, err := s.Tariffs(ctx)
	if err != nil {
		return nil, err
	}
	book, err := s.loadPartyBook(ctx)
	if err != nil {
		return nil, err
	}

	return NewDocumentJob(mb, decls, tariffs, book.Importers, book.Exporters), nil
}

func selectDeclarations(decls []Declaration, ids []string) []Declaration {
	if len(ids) == 0 {
		if decls == nil {
			return []Declaration{}
		}
		return decls
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	selected := make([]Declaration, 0, len(ids))
	for _, d := range decls {
		if want[d.ID] {
			selected = append(selected, d)
		}
	}
	return selected
}
