package api

import (
	"net/http"

	"sales_tracker/internal/config"
	"sales_tracker/internal/ledger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the store, service, and handlers onto a Gin engine and
// returns the service alongside so the caller can run the initial sync. The
// gateway is injectable so tests can swap in a fake sheet bridge.
func NewRouter(cfg config.Config, gateway ledger.Gateway, logger *zap.Logger) (*gin.Engine, *ledger.Service) {
	e := gin.New()
	e.Use(gin.Recovery())

	store := ledger.NewStore(cfg.OrderPrefix)
	service := ledger.NewService(store, gateway, logger, ledger.Policy{
		AutoSyncPayments: cfg.AutoSyncPayments,
	})
	handler := NewSalesHandler(service, logger)

	// Collection-level actions live at the root: gin's router does not let a
	// static segment share a level with the :orderNumber wildcard.
	e.GET("/sales", handler.handleList)
	e.POST("/sales", handler.handleSubmit)
	e.GET("/export", handler.handleExport)
	e.GET("/next-order", handler.handleNextOrder)
	e.POST("/resync", handler.handleResync)
	e.GET("/sales/:orderNumber/edit", handler.handleBeginEdit)
	e.POST("/sales/:orderNumber/payments", handler.handleRegisterPayment)
	e.POST("/sales/:orderNumber/cancel", handler.handleCancel)
	e.DELETE("/sales/:orderNumber", handler.handleDelete)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	return e, service
}
