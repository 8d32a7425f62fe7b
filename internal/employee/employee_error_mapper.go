package employee

import (
	"errors"
	"strings"

	employeeerrors "go-payroll-ledger/internal/employee/errors"
	"go-payroll-ledger/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError translates store failures into employee AppErrors that
// keep the store error as their cause. Anything else passes through unchanged.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.WrapAs(employeeerrors.ErrEmployeeNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_email" {
			return apperror.WrapAs(employeeerrors.ErrEmployeeAlreadyExists, err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return apperror.WrapAs(employeeerrors.ErrEmployeeAlreadyExists, err)
	}

	return err
}
