package ledger

import (
	"errors"

	"go-payroll-ledger/internal/employee"
	employeeerrors "go-payroll-ledger/internal/employee/errors"
	ledgererrors "go-payroll-ledger/internal/ledger/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, employeeerrors.ErrBalanceConflict) {
		return ledgererrors.ErrInsufficientBalance
	}
	return employee.MapRepositoryError(err)
}
