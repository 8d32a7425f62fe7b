package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	employeeerrors "go-payroll-ledger/internal/employee/errors"
	ledgererrors "go-payroll-ledger/internal/ledger/errors"
	"go-payroll-ledger/internal/shared/apperror"
	"go-payroll-ledger/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

const roleAdmin = "admin"

// AccrualTrigger runs an accrual on demand. The scheduler implements it so
// manual runs join an in-flight scheduled run.
type AccrualTrigger interface {
	TriggerNow(ctx context.Context) (AccrualReport, error)
}

type Handler struct {
	service  Service
	trigger  AccrualTrigger
	basePath string
	logger   *zap.Logger
}

func NewHandler(service Service, trigger AccrualTrigger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, trigger: trigger, basePath: "/api/v1", logger: l}
}

// withdrawFailures maps the business messages of WithdrawResult to errors.
var withdrawFailures = map[string]*apperror.AppError{
	ledgererrors.ErrUserNotFound.Message:        ledgererrors.ErrUserNotFound,
	ledgererrors.ErrInsufficientBalance.Message: ledgererrors.ErrInsufficientBalance,
	ledgererrors.ErrInvalidAmount.Message:       ledgererrors.ErrInvalidAmount,
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	log := h.logger.Warn
	if httpErr.Status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("ledger request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// canAccess lets admins act on anyone and everybody else only on themselves.
func canAccess(c *gin.Context, employeeID string) bool {
	if c.GetString("role") == roleAdmin {
		return true
	}
	return c.GetString("employee_id") == employeeID
}

func (h *Handler) ListEmployees(c *gin.Context) {
	resp, err := h.service.ListEmployees(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.AddEmployee(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) FindByEmail(c *gin.Context) {
	resp, err := h.service.FindByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if resp == nil {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RemoveByEmail(c *gin.Context) {
	removed, err := h.service.RemoveByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": removed}, nil)
}

func (h *Handler) DeleteHistory(c *gin.Context) {
	deleted, err := h.service.DeleteHistoryFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}

func (h *Handler) GetStatement(c *gin.Context) {
	id := c.Param("id")
	if !canAccess(c, id) {
		h.writeServiceError(c, ledgererrors.ErrForbiddenEmployee)
		return
	}

	stmt, err := h.service.GetStatement(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stmt, nil)
}

func (h *Handler) DownloadStatement(c *gin.Context) {
	id := c.Param("id")
	if !canAccess(c, id) {
		h.writeServiceError(c, ledgererrors.ErrForbiddenEmployee)
		return
	}

	stmt, err := h.service.GetStatement(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	pdf, err := BuildStatementPDF(stmt)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("statement-%s-%s.pdf", id, stmt.GeneratedAt.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	if !canAccess(c, req.EmployeeID) {
		h.writeServiceError(c, ledgererrors.ErrForbiddenEmployee)
		return
	}

	result, err := h.service.Withdraw(c.Request.Context(), req.EmployeeID, req.Amount)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if !result.Success {
		reason, ok := withdrawFailures[result.Message]
		if !ok {
			reason = apperror.New(apperror.CodeInvalidState, result.Message, http.StatusBadRequest)
		}
		h.writeServiceError(c, reason)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) TriggerAccrual(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		report AccrualReport
		err    error
	)
	if h.trigger != nil {
		report, err = h.trigger.TriggerNow(ctx)
	} else {
		report, err = h.service.AccrueAll(ctx)
	}

	if err != nil {
		if errors.Is(err, ledgererrors.ErrPartialBatchFailure) {
			h.logger.Error("manual accrual partially failed",
				zap.Int("failed", len(report.Failures)),
				zap.Int("succeeded", report.Succeeded),
			)
		}
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report, nil)
}

// EmployeeListPage renders the HTML employee list with balances and history.
func (h *Handler) EmployeeListPage(c *gin.Context) {
	employees, err := h.service.ListEmployees(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Render(http.StatusOK, render.HTML{
		Template: viewTemplates,
		Name:     employeeListTemplate,
		Data: employeeListView{
			BasePath:  h.basePath,
			Employees: employees,
		},
	})
}
