package employee

import (
	"sync"

	employeeerrors "go-payroll-ledger/internal/employee/errors"
	"go-payroll-ledger/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func entityValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(apperror.JSONTagName)
	})
	return validate
}

// Validate enforces the required shape of an employee row before it is
// written. Violations are hard errors.
func (e *Employee) Validate() error {
	if err := entityValidator().Struct(e); err != nil {
		return apperror.MapValidationError(err)
	}

	if e.Balance.IsNegative() {
		return employeeerrors.ErrNegativeBalance
	}
	if e.BaseSalary.IsNegative() || e.DailyRate.IsNegative() {
		return employeeerrors.ErrNegativeRate
	}

	switch e.EmployeeType {
	case TypeMonthly:
		if !e.BaseSalary.IsPositive() {
			return employeeerrors.ErrMissingBaseSalary
		}
	case TypeDaily:
		if !e.DailyRate.IsPositive() {
			return employeeerrors.ErrMissingDailyRate
		}
	}

	return nil
}
