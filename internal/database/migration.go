package database

import (
	"fmt"

	"go-payroll-ledger/internal/employee"
	"go-payroll-ledger/internal/ledger"

	"gorm.io/gorm"
)

// outboxDDL is kept as raw SQL since the outbox repository works on *sql.DB
// and has no gorm model.
var outboxDDL = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id VARCHAR(64),
	aggregate_type VARCHAR(64) NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type VARCHAR(64) NOT NULL,
	topic VARCHAR(255) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_next_retry ON outbox_events (status, next_retry_at)`,
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&ledger.BalanceEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return migrateOutbox(db)
}

func migrateOutbox(db *gorm.DB) error {
	for _, stmt := range outboxDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate outbox: %w", err)
		}
	}
	return nil
}
