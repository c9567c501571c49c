package customsdoc

import (
	"strconv"

	"github.com/JonMunkholm/customs/internal/core"
	"github.com/shopspring/decimal"
)

// Reference supplies the read-only lookups the assembler needs.
// *core.DocumentJob satisfies it.
type Reference interface {
	Tariff(code string) (core.TariffDefinition, bool)
	Importer(id string) (core.Party, bool)
	Exporter(id string) (core.Party, bool)
}

type emptyReference struct{}

func (emptyReference) Tariff(string) (core.TariffDefinition, bool) { return core.TariffDefinition{}, false }
func (emptyReference) Importer(string) (core.Party, bool)         { return core.Party{}, false }
func (emptyReference) Exporter(string) (core.Party, bool)         { return core.Party{}, false }

// Assemble maps a master bill and the declarations consolidated under it
// onto the document tree. One ConsolidatedItem is emitted per declaration,
// in the order given. ref may be nil.
func Assemble(mb core.MasterBill, decls []core.Declaration, ref Reference) *Node {
	if ref == nil {
		ref = emptyReference{}
	}

	items := Element("ConsolidatedItems")
	for i, d := range decls {
		items.Children = append(items.Children, consolidatedItem(i+1, d, ref))
	}

	return Element(RootElement,
		header(mb),
		consignment(mb),
		shipment(mb.Shipment),
		containers(mb.Containers),
		packages(mb.Packages),
		items,
	).WithAttr("version", strconv.Itoa(mb.Version))
}

func header(mb core.MasterBill) *Node {
	return Element("Header",
		Leaf("Regime", Regime),
		Leaf("ImporterNumber", ImporterNumber),
		exporterBlock(mb.Exporter),
		Leaf("DocumentDate", documentDate(mb)),
	)
}

func documentDate(mb core.MasterBill) string {
	if mb.UpdatedAt.IsZero() {
		return ""
	}
	return mb.UpdatedAt.UTC().Format(dateLayout)
}

// exporterBlock emits a number reference when the exporter has a tax
// number and the full name and address otherwise.
func exporterBlock(p core.Party) *Node {
	if p.TIN != "" {
		return Element("Exporter", Leaf("ExporterNumber", p.TIN))
	}
	return Element("Exporter",
		Leaf("ExporterName", p.Name),
		Element("ExporterAddress",
			Leaf("Street", p.Address),
			Leaf("City", p.City),
			Leaf("State", p.State),
			Leaf("PostalCode", p.PostalCode),
			Leaf("Country", p.Country),
			Leaf("Phone", p.Phone),
		),
	)
}

// DischargePort returns the port code for a transport mode. Only sea
// freight uses the sea port.
func DischargePort(mode string) string {
	if core.NormalizeTransportMode(mode) == core.ModeSea {
		return SeaDischargePort
	}
	return OtherDischargePort
}

func consignment(mb core.MasterBill) *Node {
	c := mb.Consignment
	return Element("Consignment",
		Leaf("DepartureDate", c.DepartureDate),
		Leaf("ArrivalDate", c.ArrivalDate),
		Leaf("ExportCountry", ExportCountry),
		Leaf("ImportCountry", ImportCountry),
		Leaf("LoadingPort", c.LoadingPort),
		Leaf("DischargePort", DischargePort(mb.Shipment.TransportMode)),
		Leaf("ReferenceNumber", c.ReferenceNumber),
	)
}

func shipment(s core.Shipment) *Node {
	return Element("Shipment",
		Leaf("TransportMode", s.TransportMode),
		Leaf("BillNumber", s.BillNumber),
		Leaf("CarrierName", s.CarrierName),
		Leaf("VesselName", s.VesselName),
		Leaf("VoyageNumber", s.VoyageNumber),
	)
}

// containers returns nil when the master bill lists none, which drops the
// block from the document.
func containers(list []core.Container) *Node {
	if len(list) == 0 {
		return nil
	}
	n := Element("Containers")
	for i, c := range list {
		n.Children = append(n.Children, Element("Container",
			Leaf("ContainerNumber", c.Number),
			Leaf("ContainerType", c.Type),
			Leaf("ContainerSize", c.Size),
			Leaf("SealNumber", c.SealNumber),
		).WithAttr("seq", strconv.Itoa(i+1)))
	}
	return n
}

func packages(p core.Packages) *Node {
	return Element("Packages",
		Leaf("PackageCount", p.Count),
		Leaf("PackageType", p.Type),
		Leaf("GrossWeight", p.GrossWeight),
		Leaf("GrossVolume", p.GrossVolume),
		Leaf("Contents", p.Contents),
	)
}

func consolidatedItem(seq int, d core.Declaration, ref Reference) *Node {
	lines := Element("TariffLines")
	for i, it := range d.Items {
		lines.Children = append(lines.Children, tariffLine(i+1, it, ref))
	}

	return Element("ConsolidatedItem",
		Leaf("DeclarationId", d.ID),
		Leaf("BillNumber", d.BillNumber),
		Leaf("TransportMode", d.TransportMode),
		importerBlock(d.Importer, ref),
		declarationExporter(d.Exporter, ref),
		packages(d.Packages),
		valuation(d),
		lines,
	).WithAttr("seq", strconv.Itoa(seq))
}

func importerBlock(r core.PartyRef, ref Reference) *Node {
	name := r.Name
	if p, ok := ref.Importer(r.ID); ok && name == "" {
		name = p.Name
	}
	return Element("Importer",
		Leaf("ImporterNumber", r.Number),
		Leaf("ImporterName", name),
	)
}

// declarationExporter applies the header exporter rule to a declaration's
// exporter, using the stored party for the address when one is known.
func declarationExporter(r core.PartyRef, ref Reference) *Node {
	p, ok := ref.Exporter(r.ID)
	if !ok {
		p = core.Party{ID: r.ID, Name: r.Name, TIN: r.Number}
	}
	if r.Number != "" {
		p.TIN = r.Number
	}
	return exporterBlock(p)
}

func valuation(d core.Declaration) *Node {
	v := d.Valuation
	return Element("Valuation",
		Leaf("Currency", Currency),
		Leaf("DeliveryTerms", DeliveryTerms),
		Leaf("NetCost", amount(v.NetCost)),
		Leaf("NetFreight", amount(v.NetFreight)),
		Leaf("NetInsurance", amount(v.NetInsurance)),
		Leaf("CustomsValue", amount(v.NetCost.Add(v.NetFreight).Add(v.NetInsurance))),
	)
}

func tariffLine(seq int, it core.Item, ref Reference) *Node {
	return Element("TariffLine",
		Leaf("TariffCode", it.Code),
		Leaf("Description", it.Description),
		Leaf("Quantity", it.Quantity),
		Leaf("Unit", resolveUnit(it, ref)),
		Leaf("Cost", amount(it.Cost)),
		Leaf("Freight", it.Freight),
		Leaf("Insurance", it.Insurance),
		Leaf("InvoiceNumber", it.InvoiceNumber),
		Leaf("ProcedureCode", it.ProcedureCode),
		Leaf("CategoryCode", CategoryCode),
		Leaf("PreferenceCode", PreferenceCode),
		Leaf("OriginCountry", ExportCountry),
	).WithAttr("seq", strconv.Itoa(seq))
}

// resolveUnit picks the tariff table unit, then the item's own unit, then
// DefaultUnit.
func resolveUnit(it core.Item, ref Reference) string {
	if def, ok := ref.Tariff(it.Code); ok && def.Unit != "" {
		return def.Unit
	}
	if it.Unit != "" {
		return it.Unit
	}
	return DefaultUnit
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
