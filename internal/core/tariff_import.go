package core

// tariff_import.go loads tariff reference data from a CSV export.
//
// Expected header columns (case-insensitive, any order):
//
//	Code, Description, Duty Rate (or Rate), Unit
//
// Rows without a code are skipped. Imported rows replace existing
// definitions with the same code; everything else is kept.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TariffImportResult summarizes an import.
type TariffImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// ParseTariffCSV reads tariff definitions from r.
func ParseTariffCSV(r io.Reader) ([]TariffDefinition, int, error) {
	reader := csv.NewReader(newCleanReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, &ValidationError{Field: "file", Reason: "invalid csv: empty file"}
		}
		return nil, 0, &ValidationError{Field: "file", Reason: fmt.Sprintf("invalid csv: %v", err)}
	}

	idx := MakeHeaderIndex(header)
	if _, ok := idx["code"]; !ok {
		return nil, 0, &ValidationError{Field: "file", Reason: "invalid csv: missing Code column"}
	}

	var defs []TariffDefinition
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, &ValidationError{Field: "file", Reason: fmt.Sprintf("invalid csv: %v", err)}
		}

		code := idx.Cell(row, "code")
		if code == "" {
			skipped++
			continue
		}
		defs = append(defs, TariffDefinition{
			Code:        code,
			Description: idx.Cell(row, "description"),
			DutyRate:    idx.Cell(row, "duty rate", "dutyrate", "rate"),
			Unit:        strings.ToUpper(idx.Cell(row, "unit")),
		})
	}

	return defs, skipped, nil
}

// ImportTariffs merges the definitions in r into the stored tariff table.
func (s *Service) ImportTariffs(ctx context.Context, r io.Reader) (TariffImportResult, error) {
	defs, skipped, err := ParseTariffCSV(r)
	if err != nil {
		return TariffImportResult{}, err
	}

	var existing []TariffDefinition
	if err := s.load(ctx, CollectionTariffs, &existing); err != nil {
		return TariffImportResult{}, err
	}

	merged := NewTariffTable(append(existing, defs...)).All()
	if err := s.save(ctx, CollectionTariffs, merged); err != nil {
		return TariffImportResult{}, err
	}

	result := TariffImportResult{Imported: len(defs), Skipped: skipped, Total: len(merged)}
	mutationLogger(ctx).Info("tariffs imported",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"total", result.Total,
	)
	return result, nil
}
