package api

import (
	"errors"
	"net/http"

	"sales_tracker/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// salesHandler holds the ledger service and implements HTTP handlers for the
// sales ledger operations.
type salesHandler struct {
	service *ledger.Service
	logger  *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(service *ledger.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		service: service,
		logger:  logger,
	}
}

// handleList handles GET /sales with the table filters.
func (h *salesHandler) handleList(ctx *gin.Context) {
	filter := ledger.SearchFilter{
		Type:     ledger.SaleType(ctx.Query("type")),
		Status:   ledger.PaymentStatus(ctx.Query("status")),
		DateFrom: ctx.Query("from"),
		DateTo:   ctx.Query("to"),
		Query:    ctx.Query("q"),
	}
	results, metadata := h.service.Search(filter)
	ctx.JSON(http.StatusOK, gin.H{"results": results, "metadata": metadata})
}

// handleSubmit handles POST /sales, the create-or-update form submit.
func (h *salesHandler) handleSubmit(ctx *gin.Context) {
	var record ledger.SaleRecord
	if err := ctx.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	result, err := h.service.Submit(ctx.Request.Context(), record)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	ctx.JSON(code, result)
}

// handleNextOrder handles GET /next-order, the pending order number
// pre-filled into the creation form.
func (h *salesHandler) handleNextOrder(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"order_number": h.service.NextOrderNumber()})
}

// handleBeginEdit handles GET /sales/:orderNumber/edit.
func (h *salesHandler) handleBeginEdit(ctx *gin.Context) {
	record, err := h.service.BeginEdit(ctx.Param("orderNumber"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// handleRegisterPayment handles POST /sales/:orderNumber/payments.
func (h *salesHandler) handleRegisterPayment(ctx *gin.Context) {
	var req struct {
		Amount             decimal.Decimal `json:"amount"`
		ConfirmOverpayment bool            `json:"confirm_overpayment"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.service.RegisterPayment(ctx.Request.Context(), ctx.Param("orderNumber"), req.Amount, req.ConfirmOverpayment)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// handleCancel handles POST /sales/:orderNumber/cancel.
func (h *salesHandler) handleCancel(ctx *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.service.Cancel(ctx.Request.Context(), ctx.Param("orderNumber"), req.Confirm)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// handleDelete handles DELETE /sales/:orderNumber. The confirmation and the
// challenge text travel as query parameters.
func (h *salesHandler) handleDelete(ctx *gin.Context) {
	orderNumber := ctx.Param("orderNumber")
	confirmed := ctx.Query("confirm") == "true"
	challenge := ctx.Query("challenge")

	if err := h.service.Delete(orderNumber, confirmed, challenge); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "sale deleted permanently", "order_number": orderNumber})
}

// handleResync handles POST /resync, the manual re-pull.
func (h *salesHandler) handleResync(ctx *gin.Context) {
	result := h.service.Resync(ctx.Request.Context())
	ctx.JSON(http.StatusOK, result)
}

// handleExport handles GET /export and serves the CSV download.
func (h *salesHandler) handleExport(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="`+h.service.ExportFileName()+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(h.service.ExportCSV()))
}

// respondError maps the ledger error taxonomy onto HTTP status codes.
func (h *salesHandler) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, ledger.ErrConfirmationRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, ledger.ErrAlreadySettled),
		errors.Is(err, ledger.ErrAlreadyCancelled):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("unhandled service error", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
