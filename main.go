package main

import (
	"context"
	"fmt"

	"sales_tracker/api"
	"sales_tracker/internal/config"
	"sales_tracker/internal/sheets"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	gateway := sheets.NewScriptClient(cfg.ScriptURL, cfg.SyncTimeout, logger)
	defer gateway.Close()

	r, service := api.NewRouter(cfg, gateway, logger)

	// Initial load from the sheet; a failed pull falls back to the example
	// dataset inside Resync, so the app always starts with data.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.SyncTimeout)
	service.Resync(ctx)
	cancel()

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
