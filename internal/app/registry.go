package app

import (
	"net/http"

	"go-payroll-ledger/internal/bootstrap"
	"go-payroll-ledger/internal/config"
	"go-payroll-ledger/internal/employee"
	"go-payroll-ledger/internal/ledger"
	"go-payroll-ledger/internal/messaging/kafka"
	"go-payroll-ledger/internal/middleware"
	"go-payroll-ledger/internal/rbac"
	"go-payroll-ledger/internal/rbac/infra"
	"go-payroll-ledger/internal/scheduler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type modules struct {
	scheduler *scheduler.Scheduler
}

// newLedgerService wires the ledger service the same way for every process.
func newLedgerService(cfg *config.Config, inf *infrastructure) (ledger.Service, error) {
	loc, err := cfg.Accrual.Location()
	if err != nil {
		return nil, err
	}

	return ledger.NewService(
		inf.sqlDB,
		employee.NewRepository(inf.gormDB),
		ledger.NewRepository(inf.gormDB),
		ledger.WithLocation(loc),
		ledger.WithConcurrency(cfg.Accrual.Concurrency),
		ledger.WithOutbox(kafka.NewOutboxRepository(inf.sqlDB)),
	), nil
}

func registerModules(router *gin.Engine, cfg *config.Config, inf *infrastructure) (*modules, error) {
	logger := zap.L()

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer)
	if err := rbacService.LoadPolicy(rbac.DefaultPolicy()); err != nil {
		return nil, err
	}

	// --- Services ---
	ledgerService, err := newLedgerService(cfg, inf)
	if err != nil {
		return nil, err
	}

	loc, _ := cfg.Accrual.Location()
	accrualScheduler, err := scheduler.New(ledgerService, cfg.Accrual.Cron,
		scheduler.WithRedis(inf.redis),
		scheduler.WithLocation(loc),
		scheduler.WithAuditLogger(bootstrap.NewStdoutAuditLogger()),
	)
	if err != nil {
		return nil, err
	}

	// --- Handlers ---
	ledgerHandler := ledger.NewHandler(ledgerService, accrualScheduler)

	// --- Routes Registration ---
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger.Named("http")),
		middleware.RateLimitByIP(20, 40),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		ledger.RegisterRoutes(api, ledgerHandler, ledger.RoutesDeps{
			JWTSecret:   cfg.JWT.Secret,
			RBACService: rbacService,
			Redis:       inf.redis,
		})
	}

	return &modules{scheduler: accrualScheduler}, nil
}
