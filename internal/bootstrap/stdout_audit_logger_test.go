package bootstrap

import (
	"context"
	"testing"
	"time"

	"go-payroll-ledger/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithUserID(ctx, "admin-1")
	l.Log(ctx, AuditLog{Action: "ACCRUAL_RUN", Message: "done", Meta: map[string]any{"processed": 2}})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "ACCRUAL_RUN", fields["action"])
	assert.Equal(t, "2024-06-01T00:00:00Z", fields["timestamp"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "admin-1", fields["user_id"])
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		logger, err := NewLogger(env)
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
