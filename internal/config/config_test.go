package config_test

import (
	"testing"
	"time"

	"go-payroll-ledger/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("ACCRUAL_CRON", "")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "0 0 * * *", cfg.Accrual.Cron)
	assert.Equal(t, 4, cfg.Accrual.Concurrency)
	assert.Equal(t, 3*time.Second, cfg.Outbox.PollInterval)
	assert.True(t, cfg.Accrual.SchedulerEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ACCRUAL_CONCURRENCY", "0")
	t.Setenv("OUTBOX_POLL_INTERVAL", "10s")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("ACCRUAL_TIMEZONE", "Asia/Ho_Chi_Minh")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 1, cfg.Accrual.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Outbox.PollInterval)
	assert.False(t, cfg.Accrual.SchedulerEnabled)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCRUAL_TIMEZONE", "Mars/Olympus")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	assert.EqualError(t, err, "JWT_SECRET is required")
}
