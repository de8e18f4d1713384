package ledger

import "github.com/shopspring/decimal"

// ExampleRecords returns the fixed sample dataset the app falls back to when
// the remote sheet cannot be reached, so the store is never left empty.
func ExampleRecords() []SaleRecord {
	return []SaleRecord{
		{
			OrderNumber:   "NTS-2025-001",
			ClientName:    "John Smith",
			ClientEmail:   "john@email.com",
			SaleDate:      "2025-08-12",
			SaleType:      SaleTypePackage,
			Destination:   "París, Roma, Barcelona",
			TravelDate:    "2025-09-15",
			TotalAmount:   decimal.NewFromInt(15000),
			TripCost:      decimal.NewFromInt(12000),
			AmountPaid:    decimal.NewFromInt(7500),
			PaymentStatus: StatusPartiallyPaid,
			Notes:         "Cliente VIP, pago inicial del 50%",
		},
		{
			OrderNumber:   "NTS-2025-002",
			ClientName:    "María González",
			ClientEmail:   "maria@email.com",
			SaleDate:      "2025-08-11",
			SaleType:      SaleTypeExcursion,
			Destination:   "Machu Picchu, Cusco",
			TravelDate:    "2025-10-20",
			TotalAmount:   decimal.NewFromInt(4500),
			TripCost:      decimal.NewFromInt(3200),
			AmountPaid:    decimal.Zero,
			PaymentStatus: StatusReserved,
			Notes:         "Esperando confirmación de fechas",
		},
		{
			OrderNumber:   "NTS-2025-003",
			ClientName:    "Hans Mueller",
			ClientEmail:   "hans@email.com",
			SaleDate:      "2025-08-10",
			SaleType:      SaleTypeCruise,
			Destination:   "Safari Kenia",
			TravelDate:    "2025-11-05",
			TotalAmount:   decimal.NewFromInt(8200),
			TripCost:      decimal.NewFromInt(6500),
			AmountPaid:    decimal.NewFromInt(8200),
			PaymentStatus: StatusPaid,
			Notes:         "Pago completo realizado",
		},
	}
}
