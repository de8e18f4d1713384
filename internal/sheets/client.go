// Package sheets talks to the Google-Apps-Script bridge that persists the
// ledger in a shared spreadsheet. The bridge is a plain request/response JSON
// endpoint; the old JSONP script-tag dance is gone, but the actions and the
// response envelope are the ones the deployed script already implements.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales_tracker/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"resty.dev/v3"
)

// DefaultTimeout bounds every bridge call. The Apps Script backend is slow
// on cold starts; the legacy client waited 15 seconds before giving up.
const DefaultTimeout = 15 * time.Second

// scriptSale is the flat tuple shape the bridge exchanges. Field names are
// the spreadsheet's Spanish column keys.
type scriptSale struct {
	NumeroOrden   string          `json:"numeroOrden"`
	NombreCliente string          `json:"nombreCliente"`
	EmailCliente  string          `json:"emailCliente"`
	FechaVenta    string          `json:"fechaVenta"`
	TipoVenta     string          `json:"tipoVenta"`
	Destino       string          `json:"destino"`
	FechaViaje    string          `json:"fechaViaje"`
	MontoTotal    decimal.Decimal `json:"montoTotal"`
	CostoViaje    decimal.Decimal `json:"costoViaje"`
	MontoPagado   decimal.Decimal `json:"montoPagado"`
	EstadoPago    string          `json:"estadoPago"`
	Notas         string          `json:"notas"`
}

// envelope is the bridge's uniform response shape.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    []scriptSale `json:"data"`
}

// ScriptClient is the resty-backed Gateway implementation for the bridge.
type ScriptClient struct {
	url    string
	client *resty.Client
	logger *zap.Logger
}

var _ ledger.Gateway = (*ScriptClient)(nil)

// NewScriptClient creates a client for the bridge deployed at url. A
// non-positive timeout falls back to DefaultTimeout.
func NewScriptClient(url string, timeout time.Duration, logger *zap.Logger) *ScriptClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &ScriptClient{
		url:    url,
		client: resty.New().SetTimeout(timeout),
		logger: logger,
	}
}

// Close releases the underlying HTTP client.
func (c *ScriptClient) Close() error {
	return c.client.Close()
}

// Pull fetches the full external collection via the getSales action.
func (c *ScriptClient) Pull(ctx context.Context) ([]ledger.SaleRecord, error) {
	env, err := c.call(ctx, "getSales", nil)
	if err != nil {
		return nil, err
	}

	records := make([]ledger.SaleRecord, 0, len(env.Data))
	for _, row := range env.Data {
		// The sheet's header row can leak through as a data row.
		if row.NumeroOrden == "" || row.NumeroOrden == "N° Orden" {
			continue
		}
		records = append(records, row.toRecord())
	}
	c.logger.Info("pulled sales from sheet", zap.Int("count", len(records)))
	return records, nil
}

// Push appends or updates one row via addSale / updateSale. Best-effort by
// contract: callers treat a returned error as a warning, never a rollback.
func (c *ScriptClient) Push(ctx context.Context, mode ledger.PushMode, record ledger.SaleRecord) error {
	payload, err := json.Marshal(fromRecord(record))
	if err != nil {
		return fmt.Errorf("encoding sale %s: %w", record.OrderNumber, err)
	}

	action := "addSale"
	params := map[string]string{"saleData": string(payload)}
	if mode == ledger.PushUpdate {
		action = "updateSale"
		params["orderNumber"] = record.OrderNumber
	}

	if _, err := c.call(ctx, action, params); err != nil {
		return err
	}
	c.logger.Info("pushed sale to sheet",
		zap.String("order_number", record.OrderNumber),
		zap.String("action", action),
	)
	return nil
}

func (c *ScriptClient) call(ctx context.Context, action string, params map[string]string) (*envelope, error) {
	env := &envelope{}
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("action", action).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetResult(env)
	for k, v := range params {
		req.SetQueryParam(k, v)
	}

	resp, err := req.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("sheet bridge %s: %w", action, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("sheet bridge %s: unexpected status %d", action, resp.StatusCode())
	}
	if !env.Success {
		if env.Message == "" {
			env.Message = "bridge reported failure without a message"
		}
		return nil, fmt.Errorf("sheet bridge %s: %s", action, env.Message)
	}
	return env, nil
}

func (s scriptSale) toRecord() ledger.SaleRecord {
	status := ledger.PaymentStatus(s.EstadoPago)
	if status == "" {
		status = ledger.StatusReserved
	}
	return ledger.SaleRecord{
		OrderNumber:   s.NumeroOrden,
		ClientName:    s.NombreCliente,
		ClientEmail:   s.EmailCliente,
		SaleDate:      s.FechaVenta,
		SaleType:      ledger.SaleType(s.TipoVenta),
		Destination:   s.Destino,
		TravelDate:    s.FechaViaje,
		TotalAmount:   s.MontoTotal,
		TripCost:      s.CostoViaje,
		AmountPaid:    s.MontoPagado,
		PaymentStatus: status,
		Notes:         s.Notas,
	}
}

func fromRecord(r ledger.SaleRecord) scriptSale {
	return scriptSale{
		NumeroOrden:   r.OrderNumber,
		NombreCliente: r.ClientName,
		EmailCliente:  r.ClientEmail,
		FechaVenta:    r.SaleDate,
		TipoVenta:     string(r.SaleType),
		Destino:       r.Destination,
		FechaViaje:    r.TravelDate,
		MontoTotal:    r.TotalAmount,
		CostoViaje:    r.TripCost,
		MontoPagado:   r.AmountPaid,
		EstadoPago:    string(r.PaymentStatus),
		Notas:         r.Notes,
	}
}
