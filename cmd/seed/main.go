package main

import (
	"context"

	"go-payroll-ledger/internal/app"
	"go-payroll-ledger/internal/bootstrap"
	"go-payroll-ledger/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunSeed(context.Background(), cfg); err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
}
