package ledger

import (
	"fmt"
	"strings"
	"time"
)

// csvHeader is the fixed export header. Kept byte-identical with the format
// the agency's spreadsheets already consume.
var csvHeader = []string{
	"N° Orden", "Cliente", "Email", "Tipo Venta", "Destino",
	"Fecha Venta", "Fecha Viaje", "Monto Total", "Monto Pagado",
	"Monto Restante", "Estado Pago", "Utilidad", "Notas",
}

// ExportCSV renders the whole collection, cancelled records included, as a
// CSV document with the computed Monto Restante and Utilidad columns.
// Free-text fields are double-quoted, matching the legacy export.
func (s *Service) ExportCSV() string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, r := range s.store.All() {
		row := []string{
			r.OrderNumber,
			quote(r.ClientName),
			r.ClientEmail,
			quote(string(r.SaleType)),
			quote(r.Destination),
			r.SaleDate,
			r.TravelDate,
			r.TotalAmount.String(),
			r.AmountPaid.String(),
			r.Remaining().String(),
			quote(string(r.PaymentStatus)),
			r.Profit().String(),
			quote(r.Notes),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// ExportFileName suggests the download name, e.g. NTS_Ventas_2025-08-30.csv.
func (s *Service) ExportFileName() string {
	return fmt.Sprintf("%s_Ventas_%s.csv", s.store.prefix, time.Now().Format("2006-01-02"))
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
