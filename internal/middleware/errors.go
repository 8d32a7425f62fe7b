package middleware

import (
	"net/http"

	"go-payroll-ledger/internal/shared/apperror"
	"go-payroll-ledger/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid or malformed token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrRequestInProgress = apperror.New(
		"PROCESSING",
		"A request with this idempotency key is still being processed",
		http.StatusConflict,
	)
	ErrTooManyRequests = apperror.New(
		apperror.CodeTooManyRequests,
		"Too many requests",
		http.StatusTooManyRequests,
	)
)

func abortError(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus, err.Code, err.Message)
}
