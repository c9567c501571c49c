package core

// normalize.go is the single place where inbound payloads are turned into
// persisted values. After this pass no other code needs to guard against
// missing text or malformed numbers.

func normalizePackages(in PackagesInput) Packages {
	return Packages{
		Count:       in.Count.Value(),
		Type:        in.Type.Value(),
		GrossWeight: in.GrossWeight.Value(),
		GrossVolume: in.GrossVolume.Value(),
		Contents:    in.Contents.Value(),
	}
}

func normalizeValuation(in ValuationInput) Valuation {
	return Valuation{
		NetCost:      in.NetCost.Amount(),
		NetFreight:   in.NetFreight.Amount(),
		NetInsurance: in.NetInsurance.Amount(),
	}
}

// normalizeItem converts a submitted tariff line. The ID is copied as sent;
// callers decide whether to keep it or issue a fresh one.
func normalizeItem(in ItemInput) Item {
	return Item{
		ID:            in.ID.Value(),
		Code:          in.Code.Value(),
		Description:   in.Description.Value(),
		Quantity:      in.Quantity.Value(),
		Unit:          in.Unit.Value(),
		Cost:          in.Cost.Amount(),
		Freight:       ZeroAmount,
		Insurance:     ZeroAmount,
		InvoiceNumber: in.InvoiceNumber.Value(),
		ProcedureCode: in.ProcedureCode.Value(),
	}
}

// NormalizeItems converts submitted tariff lines, keeping their order.
func NormalizeItems(in []ItemInput) []Item {
	items := make([]Item, len(in))
	for i, it := range in {
		items[i] = normalizeItem(it)
	}
	return items
}

// partyFromInput builds a party record from a payload. Absent text is "".
func partyFromInput(id string, in *PartyInput) Party {
	return Party{
		ID:         id,
		Name:       in.Name.Value(),
		TIN:        in.TIN.Value(),
		Address:    in.Address.Value(),
		City:       in.City.Value(),
		State:      in.State.Value(),
		PostalCode: in.PostalCode.Value(),
		Country:    in.Country.Value(),
		Phone:      in.Phone.Value(),
	}
}

// NormalizeMasterBill converts a submitted master bill context. Version and
// timestamps are assigned when it is stored.
func NormalizeMasterBill(in MasterBillInput) MasterBill {
	containers := make([]Container, 0, len(in.Containers))
	for _, c := range in.Containers {
		containers = append(containers, Container{
			Number:     c.Number.Value(),
			Type:       c.Type.Value(),
			Size:       c.Size.Value(),
			SealNumber: c.SealNumber.Value(),
		})
	}

	exporter := in.Exporter
	return MasterBill{
		Consignment: Consignment{
			DepartureDate:   in.Consignment.DepartureDate.Value(),
			ArrivalDate:     in.Consignment.ArrivalDate.Value(),
			LoadingPort:     in.Consignment.LoadingPort.Value(),
			ReferenceNumber: in.Consignment.ReferenceNumber.Value(),
		},
		Shipment: Shipment{
			TransportMode: NormalizeTransportMode(in.Shipment.TransportMode.Value()),
			BillNumber:    in.Shipment.BillNumber.Value(),
			CarrierName:   in.Shipment.CarrierName.Value(),
			VesselName:    in.Shipment.VesselName.Value(),
			VoyageNumber:  in.Shipment.VoyageNumber.Value(),
		},
		Packages:   normalizePackages(in.Packages),
		Containers: containers,
		Exporter:   partyFromInput(exporter.ID.Value(), &exporter),
	}
}
