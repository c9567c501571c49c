package core

import (
	"sort"
	"strings"
)

// TariffTable is a read-only lookup of tariff definitions by code.
// Codes are matched ignoring punctuation and case.
type TariffTable struct {
	byCode map[string]TariffDefinition
}

// NewTariffTable indexes defs. When two definitions share a code the later
// one wins.
func NewTariffTable(defs []TariffDefinition) *TariffTable {
	t := &TariffTable{byCode: make(map[string]TariffDefinition, len(defs))}
	for _, d := range defs {
		key := normalizeTariffCode(d.Code)
		if key == "" {
			continue
		}
		t.byCode[key] = d
	}
	return t
}

// Lookup returns the definition for code.
func (t *TariffTable) Lookup(code string) (TariffDefinition, bool) {
	if t == nil {
		return TariffDefinition{}, false
	}
	d, ok := t.byCode[normalizeTariffCode(code)]
	return d, ok
}

// UnitFor returns the display unit for code, or "" when the code is unknown
// or its definition carries no unit.
func (t *TariffTable) UnitFor(code string) string {
	d, ok := t.Lookup(code)
	if !ok {
		return ""
	}
	return strings.TrimSpace(d.Unit)
}

// All returns every definition sorted by code for consistent ordering.
func (t *TariffTable) All() []TariffDefinition {
	if t == nil {
		return nil
	}
	result := make([]TariffDefinition, 0, len(t.byCode))
	for _, d := range t.byCode {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})
	return result
}

// Len returns the number of indexed definitions.
func (t *TariffTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byCode)
}
