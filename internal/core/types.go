package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStore is the persistence contract the service relies on.
// Satisfied by every backend in the store package.
type DocumentStore interface {
	// Read returns the document stored under collection, or nil when the
	// collection has never been written.
	Read(ctx context.Context, collection string) ([]byte, error)
	// Write replaces the document stored under collection.
	Write(ctx context.Context, collection string, doc []byte) error
}

// Logical collection names.
const (
	CollectionDeclarations = "declarations"
	CollectionImporters    = "importers"
	CollectionExporters    = "exporters"
	CollectionTariffs      = "tariffs"
	CollectionMasterBill   = "masterbill"
)

// Transport modes with special meaning. Any other text is accepted as-is.
const (
	ModeAir   = "AIR"
	ModeOcean = "OCEAN"
	ModeSea   = "SEA"
)

// Party is an importer or exporter.
type Party struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TIN        string `json:"tin"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`

	// ImporterID links an exporter to the importer it was first seen with.
	// Used for filtered lookups only; empty on importers.
	ImporterID string `json:"importerId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PartyRef is the reference a declaration embeds for its importer and exporter.
// Number and Name are denormalized from the party at resolution time.
type PartyRef struct {
	ID     string `json:"id,omitempty"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Resolved reports whether the reference points at a stored party.
func (r PartyRef) Resolved() bool {
	return r.ID != ""
}

// Packages describes the packaging of a shipment.
type Packages struct {
	Count       string `json:"count"`
	Type        string `json:"type"`
	GrossWeight string `json:"grossWeight"`
	GrossVolume string `json:"grossVolume"`
	Contents    string `json:"contents"`
}

// Valuation holds the declared shipment-level amounts.
type Valuation struct {
	NetCost      decimal.Decimal `json:"netCost"`
	NetFreight   decimal.Decimal `json:"netFreight"`
	NetInsurance decimal.Decimal `json:"netInsurance"`
}

// Item is one tariff line of a declaration.
// Freight and Insurance are computed and always carry two fractional digits.
type Item struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	Quantity      string          `json:"quantity"`
	Unit          string          `json:"unit"`
	Cost          decimal.Decimal `json:"cost"`
	Freight       string          `json:"freight"`
	Insurance     string          `json:"insurance"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ProcedureCode string          `json:"procedureCode"`
}

// Declaration is one shipment's customs filing record.
type Declaration struct {
	ID            string    `json:"id"`
	TransportMode string    `json:"transportMode"`
	BillNumber    string    `json:"billNumber"`
	Importer      PartyRef  `json:"importer"`
	Exporter      PartyRef  `json:"exporter"`
	Packages      Packages  `json:"packages"`
	Valuation     Valuation `json:"valuation"`
	Items         []Item    `json:"items"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Consignment holds the dates and places of the consolidated shipment.
type Consignment struct {
	DepartureDate   string `json:"departureDate"`
	ArrivalDate     string `json:"arrivalDate"`
	LoadingPort     string `json:"loadingPort"`
	ReferenceNumber string `json:"referenceNumber"`
}

// Shipment identifies the carrier movement.
type Shipment struct {
	TransportMode string `json:"transportMode"`
	BillNumber    string `json:"billNumber"`
	CarrierName   string `json:"carrierName"`
	VesselName    string `json:"vesselName"`
	VoyageNumber  string `json:"voyageNumber"`
}

// Container is one container listed on the master bill.
type Container struct {
	Number     string `json:"number"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	SealNumber string `json:"sealNumber"`
}

// MasterBill is the consolidated shipment context for document generation.
// At most one is stored; each generation overwrites it and bumps Version.
type MasterBill struct {
	Version     int         `json:"version"`
	Consignment Consignment `json:"consignment"`
	Shipment    Shipment    `json:"shipment"`
	Packages    Packages    `json:"packages"`
	Containers  []Container `json:"containers"`
	Exporter    Party       `json:"exporter"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TariffDefinition is read-only reference data for a tariff code.
type TariffDefinition struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	DutyRate    string `json:"dutyRate"`
	Unit        string `json:"unit"`
}
