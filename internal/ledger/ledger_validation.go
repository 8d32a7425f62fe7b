package ledger

import (
	"sync"

	"go-payroll-ledger/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func entryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(apperror.JSONTagName)
	})
	return validate
}

func (e *BalanceEntry) Validate() error {
	if e.EmployeeID == uuid.Nil {
		return apperror.RequiredField("Employee Id")
	}
	if e.Date.IsZero() {
		return apperror.RequiredField("Date")
	}
	if err := entryValidator().Struct(e); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}
