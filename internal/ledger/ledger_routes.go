package ledger

import (
	"go-payroll-ledger/internal/middleware"
	"go-payroll-ledger/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RoutesDeps are the cross-cutting collaborators of the ledger routes.
type RoutesDeps struct {
	JWTSecret   string
	RBACService rbac.Service
	Redis       *redis.Client
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, deps RoutesDeps) {
	handler.basePath = r.BasePath()

	authed := r.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret), middleware.ExtractUserID())

	employees := authed.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.ListEmployees,
		)
		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceEmployee, rbac.ActionCreate),
			handler.AddEmployee,
		)
		employees.GET("/lookup",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.FindByEmail,
		)
		employees.DELETE("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceEmployee, rbac.ActionDelete),
			handler.RemoveByEmail,
		)
		employees.DELETE("/:id/history",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceEmployee, rbac.ActionDelete),
			handler.DeleteHistory,
		)
		employees.GET("/:id/statement",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceLedger, rbac.ActionRead),
			handler.GetStatement,
		)
		employees.GET("/:id/statement.pdf",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceLedger, rbac.ActionRead),
			handler.DownloadStatement,
		)
	}

	ledgerGroup := authed.Group("/ledger")
	{
		ledgerGroup.POST("/withdraw",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceLedger, rbac.ActionWithdraw),
			middleware.Idempotency(deps.Redis),
			handler.Withdraw,
		)
		ledgerGroup.POST("/accruals",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceLedger, rbac.ActionAccrue),
			handler.TriggerAccrual,
		)
	}

	authed.GET("/user",
		middleware.RBACAuthorize(deps.RBACService, rbac.ResourceEmployee, rbac.ActionRead),
		handler.EmployeeListPage,
	)
}
