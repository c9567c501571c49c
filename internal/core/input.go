package core

// PartyInput is an importer or exporter as submitted. Any field may be absent.
type PartyInput struct {
	ID         Field `json:"id"`
	Name       Field `json:"name"`
	TIN        Field `json:"tin"`
	Address    Field `json:"address"`
	City       Field `json:"city"`
	State      Field `json:"state"`
	PostalCode Field `json:"postalCode"`
	Country    Field `json:"country"`
	Phone      Field `json:"phone"`
}

// PackagesInput is the packages block as submitted.
type PackagesInput struct {
	Count       Field `json:"count"`
	Type        Field `json:"type"`
	GrossWeight Field `json:"grossWeight"`
	GrossVolume Field `json:"grossVolume"`
	Contents    Field `json:"contents"`
}

// ValuationInput is the valuation block as submitted.
type ValuationInput struct {
	NetCost      Field `json:"netCost"`
	NetFreight   Field `json:"netFreight"`
	NetInsurance Field `json:"netInsurance"`
}

// ItemInput is a tariff line as submitted. Freight and insurance are always
// computed, so they are not accepted here.
type ItemInput struct {
	ID            Field `json:"id"`
	Code          Field `json:"code"`
	Description   Field `json:"description"`
	Quantity      Field `json:"quantity"`
	Unit          Field `json:"unit"`
	Cost          Field `json:"cost"`
	InvoiceNumber Field `json:"invoiceNumber"`
	ProcedureCode Field `json:"procedureCode"`
}

// DeclarationInput is a declaration as submitted for create or full update.
// A nil Items slice means the list was not sent at all, which differs from
// an explicit empty list on update.
type DeclarationInput struct {
	ID            Field          `json:"id"`
	TransportMode Field          `json:"transportMode"`
	BillNumber    Field          `json:"billNumber"`
	Importer      *PartyInput    `json:"importer"`
	Exporter      *PartyInput    `json:"exporter"`
	Packages      PackagesInput  `json:"packages"`
	Valuation     ValuationInput `json:"valuation"`
	Items         []ItemInput    `json:"items"`
}

// ConsignmentInput is the consignment block of a master bill as submitted.
type ConsignmentInput struct {
	DepartureDate   Field `json:"departureDate"`
	ArrivalDate     Field `json:"arrivalDate"`
	LoadingPort     Field `json:"loadingPort"`
	ReferenceNumber Field `json:"referenceNumber"`
}

// ShipmentInput is the shipment block of a master bill as submitted.
type ShipmentInput struct {
	TransportMode Field `json:"transportMode"`
	BillNumber    Field `json:"billNumber"`
	CarrierName   Field `json:"carrierName"`
	VesselName    Field `json:"vesselName"`
	VoyageNumber  Field `json:"voyageNumber"`
}

// ContainerInput is one container as submitted.
type ContainerInput struct {
	Number     Field `json:"number"`
	Type       Field `json:"type"`
	Size       Field `json:"size"`
	SealNumber Field `json:"sealNumber"`
}

// MasterBillInput is the master bill context sent with a document request.
type MasterBillInput struct {
	Consignment ConsignmentInput `json:"consignment"`
	Shipment    ShipmentInput    `json:"shipment"`
	Packages    PackagesInput    `json:"packages"`
	Containers  []ContainerInput `json:"containers"`
	Exporter    PartyInput       `json:"exporter"`
}
