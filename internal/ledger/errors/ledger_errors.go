package ledgererrors

import (
	"errors"
	"fmt"
	"net/http"

	"go-payroll-ledger/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found.",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"Insufficient balance.",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid amount.",
		http.StatusBadRequest,
	)

	ErrEmailRequired = apperror.RequiredField("Email")

	ErrForbiddenEmployee = apperror.New(
		apperror.CodeForbidden,
		"You can only access your own balance",
		http.StatusForbidden,
	)
	ErrAccrualInProgress = apperror.New(
		apperror.CodeInvalidState,
		"An accrual run is already in progress",
		http.StatusConflict,
	)

	// ErrPartialBatchFailure is matched with errors.Is on a *PartialBatchError.
	ErrPartialBatchFailure = apperror.New(
		apperror.CodePartialBatchFailure,
		"Accrual failed for some employees",
		http.StatusInternalServerError,
	)
)

// EmployeeFailure is a single failed employee inside a batch.
type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// PartialBatchError carries every per-employee error of an accrual run.
type PartialBatchError struct {
	Failures []EmployeeFailure
	Errs     []error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("accrual failed for %d employee(s): %v", len(e.Failures), errors.Join(e.Errs...))
}

// Unwrap exposes the sentinel plus every wrapped cause.
func (e *PartialBatchError) Unwrap() []error {
	return append([]error{ErrPartialBatchFailure}, e.Errs...)
}

func (e *PartialBatchError) ErrorDetails() any {
	return e.Failures
}

func (e *PartialBatchError) Add(employeeID string, err error) {
	e.Failures = append(e.Failures, EmployeeFailure{EmployeeID: employeeID, Error: err.Error()})
	e.Errs = append(e.Errs, err)
}
