package app

import (
	"context"
	"time"

	"go-payroll-ledger/internal/config"
	"go-payroll-ledger/internal/database"
	"go-payroll-ledger/internal/seed"

	"go.uber.org/zap"
)

// RunSeed migrates the schema and loads the demo employees.
func RunSeed(ctx context.Context, cfg *config.Config) error {
	inf, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer inf.close()

	if err := database.AutoMigrate(inf.gormDB); err != nil {
		return err
	}

	ledgerService, err := newLedgerService(cfg, inf)
	if err != nil {
		return err
	}

	if err := seed.Seed(ctx, ledgerService, time.Now(), zap.L()); err != nil {
		return err
	}

	zap.L().Info("seed data has been inserted")
	return nil
}
