package customsdoc

// Fixed schema values.
const (
	RootElement = "CustomsDeclaration"

	// Regime is the customs procedure: import for home use.
	Regime = "IM4"

	// ImporterNumber identifies the consolidating broker as importer of
	// record on the master bill header.
	ImporterNumber = "KY-CONSOL-0001"

	ExportCountry = "US"
	ImportCountry = "KY"

	// Discharge ports. Sea freight arrives at the cargo port; everything
	// else clears through the airport.
	SeaDischargePort   = "KYGEC"
	OtherDischargePort = "KYGCM"

	Currency      = "USD"
	DeliveryTerms = "CIF"

	// CategoryCode and PreferenceCode are reported on every tariff line.
	CategoryCode   = "000"
	PreferenceCode = "GEN"

	// DefaultUnit applies when neither the tariff table nor the item
	// supplies a unit.
	DefaultUnit = "EA"

	dateLayout = "2006-01-02"
)
