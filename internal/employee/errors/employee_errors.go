package employeeerrors

import (
	"errors"
	"net/http"

	"go-payroll-ledger/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrNegativeBalance = apperror.New(
		apperror.CodeValidation,
		"Balance must not be negative",
		http.StatusBadRequest,
	)
	ErrNegativeRate = apperror.New(
		apperror.CodeValidation,
		"Base salary and daily rate must not be negative",
		http.StatusBadRequest,
	)
	ErrMissingBaseSalary = apperror.New(
		apperror.CodeValidation,
		"Base salary is required for monthly employees",
		http.StatusBadRequest,
	)
	ErrMissingDailyRate = apperror.New(
		apperror.CodeValidation,
		"Daily rate is required for daily employees",
		http.StatusBadRequest,
	)

	// ErrBalanceConflict means a conditional balance update matched no row.
	ErrBalanceConflict = errors.New("balance precondition failed")
)
