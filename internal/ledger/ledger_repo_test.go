package ledger_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"go-payroll-ledger/internal/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) (ledger.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return ledger.NewRepository(gormDB), mock, sqlDB
}

func TestRepository_FindByEmployee(t *testing.T) {
	repo, mock, sqlDB := setupRepoTest(t)
	defer sqlDB.Close()

	ctx := context.Background()
	employeeID := uuid.New()
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "balance_histories" WHERE employee_id = $1 ORDER BY date ASC`)).
		WithArgs(employeeID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "amount", "date", "description"}).
			AddRow(uuid.NewString(), employeeID.String(), "500", first, ledger.DescriptionInitial).
			AddRow(uuid.NewString(), employeeID.String(), "-100", first.Add(time.Hour), ledger.DescriptionWithdraw))

	entries, err := repo.FindByEmployee(ctx, employeeID.String())

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, employeeID, entries[0].EmployeeID)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(-100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmployees(t *testing.T) {
	t.Run("no ids skips the query", func(t *testing.T) {
		repo, mock, sqlDB := setupRepoTest(t)
		defer sqlDB.Close()

		entries, err := repo.FindByEmployees(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SumByEmployee(t *testing.T) {
	repo, mock, sqlDB := setupRepoTest(t)
	defer sqlDB.Close()

	employeeID := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) AS total FROM "balance_histories" WHERE employee_id = $1`)).
		WithArgs(employeeID).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("400.50"))

	total, err := repo.SumByEmployee(context.Background(), employeeID)

	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("400.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	deleteSQL := regexp.QuoteMeta(`DELETE FROM "balance_histories" WHERE employee_id = $1`)

	t.Run("standalone", func(t *testing.T) {
		repo, mock, sqlDB := setupRepoTest(t)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).
			WithArgs(employeeID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		n, err := repo.DeleteByEmployee(ctx, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inside the bound transaction", func(t *testing.T) {
		repo, mock, sqlDB := setupRepoTest(t)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).
			WithArgs(employeeID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		tx, err := sqlDB.BeginTx(ctx, nil)
		assert.NoError(t, err)

		n, err := repo.WithTx(tx).DeleteByEmployee(ctx, employeeID)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CreateValidates(t *testing.T) {
	repo, mock, sqlDB := setupRepoTest(t)
	defer sqlDB.Close()

	err := repo.Create(context.Background(), &ledger.BalanceEntry{
		ID:          uuid.New(),
		Amount:      decimal.NewFromInt(1),
		Date:        time.Now(),
		Description: ledger.DescriptionDailyDeposit,
	})

	assert.EqualError(t, err, "Employee Id is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}
