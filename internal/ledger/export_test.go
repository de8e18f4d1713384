package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestExportCSV(t *testing.T) {
	svc := NewService(NewStore("NTS"), &stubGateway{}, zaptest.NewLogger(t), Policy{})
	svc.Store().Load(ExampleRecords())

	lines := strings.Split(strings.TrimRight(svc.ExportCSV(), "\n"), "\n")
	require.Len(t, lines, 4, "header plus one row per record")

	assert.Equal(t,
		"N° Orden,Cliente,Email,Tipo Venta,Destino,Fecha Venta,Fecha Viaje,Monto Total,Monto Pagado,Monto Restante,Estado Pago,Utilidad,Notas",
		lines[0])

	// Free-text fields quoted, computed columns included.
	assert.Equal(t,
		`NTS-2025-001,"John Smith",john@email.com,"Paquete Completo","París, Roma, Barcelona",2025-08-12,2025-09-15,15000,7500,7500,"Parcialmente Pagado",3000,"Cliente VIP, pago inicial del 50%"`,
		lines[1])

	// Cancelled records are exported too.
	_, err := svc.Cancel(context.Background(), "NTS-2025-002", true)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(svc.ExportCSV(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], `"Cancelado"`)
}

func TestExportCSVEscapesEmbeddedQuotes(t *testing.T) {
	svc := NewService(NewStore("NTS"), &stubGateway{}, zaptest.NewLogger(t), Policy{})
	svc.Store().Load([]SaleRecord{{
		OrderNumber: "NTS-2025-001",
		ClientName:  `Juan "el Flaco" Pérez`,
		SaleType:    SaleTypeHotel,
		Destination: "Cancún",
	}})

	out := svc.ExportCSV()
	assert.Contains(t, out, `"Juan ""el Flaco"" Pérez"`)
}

func TestExportFileName(t *testing.T) {
	svc := NewService(NewStore("NTS"), &stubGateway{}, zaptest.NewLogger(t), Policy{})
	name := svc.ExportFileName()
	assert.True(t, strings.HasPrefix(name, "NTS_Ventas_"), name)
	assert.True(t, strings.HasSuffix(name, ".csv"), name)
}
