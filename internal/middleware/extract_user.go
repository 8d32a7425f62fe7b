package middleware

import (
	"go-payroll-ledger/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExtractUserID copies the authenticated user onto the request context and
// its logger. It must run after AuthMiddleware.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			abortError(c, ErrTokenNotFound)
			return
		}

		c.Set("user_id_validated", userID)

		ctx := c.Request.Context()
		logger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", userID),
			zap.String("role", c.GetString("role")),
		)
		ctx = contextutil.WithUserID(ctx, userID)
		ctx = contextutil.WithLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
