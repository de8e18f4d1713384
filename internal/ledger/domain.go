package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SaleType classifies a sale. The values are the exact strings stored in the
// backing spreadsheet, so they must not be renamed without migrating the sheet.
type SaleType string

const (
	SaleTypeHotel     SaleType = "Hotel"
	SaleTypeFlights   SaleType = "Vuelos"
	SaleTypeCruise    SaleType = "Cruceros"
	SaleTypeExcursion SaleType = "Excursion"
	SaleTypeTransfer  SaleType = "Traslado"
	SaleTypePackage   SaleType = "Paquete Completo"
)

// IsValid checks if the value is one of the known sale types.
func (t SaleType) IsValid() bool {
	switch t {
	case SaleTypeHotel, SaleTypeFlights, SaleTypeCruise, SaleTypeExcursion, SaleTypeTransfer, SaleTypePackage:
		return true
	}
	return false
}

// SaleTypes lists every valid sale type.
func SaleTypes() []SaleType {
	return []SaleType{SaleTypeHotel, SaleTypeFlights, SaleTypeCruise, SaleTypeExcursion, SaleTypeTransfer, SaleTypePackage}
}

// PaymentStatus is the payment state of a record. Like SaleType, the values
// are the spreadsheet's wire strings.
type PaymentStatus string

const (
	StatusReserved      PaymentStatus = "Reservado"
	StatusPartiallyPaid PaymentStatus = "Parcialmente Pagado"
	StatusPaid          PaymentStatus = "Pagado"
	StatusCancelled     PaymentStatus = "Cancelado"
)

// IsValid checks if the value is one of the known payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusReserved, StatusPartiallyPaid, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// DerivePaymentStatus computes the status a record should be in given its
// amounts. Cancelled is sticky: once a record is cancelled the amounts no
// longer matter and no derivation brings it back.
func DerivePaymentStatus(total, paid decimal.Decimal, previous PaymentStatus) PaymentStatus {
	if previous == StatusCancelled {
		return StatusCancelled
	}
	if paid.LessThanOrEqual(decimal.Zero) {
		return StatusReserved
	}
	if paid.LessThan(total) {
		return StatusPartiallyPaid
	}
	return StatusPaid
}

// SaleRecord represents one sale/booking entry of the agency's ledger.
type SaleRecord struct {
	OrderNumber   string          `json:"order_number"`
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email"`
	SaleDate      string          `json:"sale_date"`
	SaleType      SaleType        `json:"sale_type"`
	Destination   string          `json:"destination"`
	TravelDate    string          `json:"travel_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TripCost      decimal.Decimal `json:"trip_cost"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Notes         string          `json:"notes"`
}

// Remaining is the balance still owed by the client.
func (r SaleRecord) Remaining() decimal.Decimal {
	return r.TotalAmount.Sub(r.AmountPaid)
}

// Profit is the agency's margin on the sale.
func (r SaleRecord) Profit() decimal.Decimal {
	return r.TotalAmount.Sub(r.TripCost)
}

// Validate checks the required fields of a record before it may enter the
// store. Amounts must not be negative; overpayment itself is legal.
func (r SaleRecord) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" {
		return newValidationError("client_name is required")
	}
	if strings.TrimSpace(r.ClientEmail) == "" {
		return newValidationError("client_email is required")
	}
	if r.SaleType == "" {
		return newValidationError("sale_type is required")
	}
	if !r.SaleType.IsValid() {
		return newValidationError("sale_type '" + string(r.SaleType) + "' is not a known type")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return newValidationError("destination is required")
	}
	if r.TotalAmount.IsNegative() || r.TripCost.IsNegative() || r.AmountPaid.IsNegative() {
		return newValidationError("amounts cannot be negative")
	}
	return nil
}
