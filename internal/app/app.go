package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-payroll-ledger/internal/config"
	"go-payroll-ledger/internal/database"
	"go-payroll-ledger/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	redis  *redis.Client
}

func (i *infrastructure) close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

func connectDatabase(cfg *config.Config) (*infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), connectRetries)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	return &infrastructure{gormDB: gormDB, sqlDB: sqlDB}, nil
}

// BuildApp connects the infrastructure, migrates the schema, registers the
// routes and starts the accrual scheduler. The returned func releases
// everything and must be called on shutdown.
func BuildApp(router *gin.Engine, cfg *config.Config) (shutdown func(ctx context.Context), err error) {
	logger := zap.L().Named("app")

	inf, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := database.AutoMigrate(inf.gormDB); err != nil {
		inf.close()
		return nil, err
	}

	inf.redis, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
	if err != nil {
		inf.close()
		return nil, err
	}
	logger.Info("redis connection established")

	mods, err := registerModules(router, cfg, inf)
	if err != nil {
		inf.close()
		return nil, fmt.Errorf("register modules: %w", err)
	}

	if cfg.Accrual.SchedulerEnabled {
		mods.scheduler.Start()
	} else {
		logger.Info("accrual scheduler disabled")
	}

	return func(ctx context.Context) {
		if err := mods.scheduler.Stop(ctx); err != nil {
			logger.Warn("scheduler stop failed", zap.Error(err))
		}
		inf.close()
	}, nil
}
