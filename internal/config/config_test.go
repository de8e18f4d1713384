package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCRIPT_URL", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("ORDER_PREFIX", "")
	t.Setenv("SYNC_TIMEOUT_SECONDS", "")
	t.Setenv("AUTO_SYNC_PAYMENTS", "")

	cfg := Load()
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "NTS", cfg.OrderPrefix)
	assert.Equal(t, 15*time.Second, cfg.SyncTimeout)
	assert.False(t, cfg.AutoSyncPayments)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SCRIPT_URL", "https://script.example.com/exec")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ORDER_PREFIX", "ACME")
	t.Setenv("SYNC_TIMEOUT_SECONDS", "30")
	t.Setenv("AUTO_SYNC_PAYMENTS", "true")

	cfg := Load()
	assert.Equal(t, "https://script.example.com/exec", cfg.ScriptURL)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "ACME", cfg.OrderPrefix)
	assert.Equal(t, 30*time.Second, cfg.SyncTimeout)
	assert.True(t, cfg.AutoSyncPayments)
}

func TestLoadRejectsGarbageValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	t.Setenv("SYNC_TIMEOUT_SECONDS", "-3")
	t.Setenv("AUTO_SYNC_PAYMENTS", "maybe")

	cfg := Load()
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.SyncTimeout)
	assert.False(t, cfg.AutoSyncPayments)
}
