package employee

import (
	"context"
	"database/sql"

	employeeerrors "go-payroll-ledger/internal/employee/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	AddToBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	DeductFromBalance(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

type balanceRow struct {
	Balance decimal.Decimal
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn runs the statement on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if err := empl.Validate(); err != nil {
		return err
	}
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "email = ?", email).Error
	return &empl, err
}

// AddToBalance applies delta in place and returns the new balance.
func (r *repository) AddToBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var row balanceRow
	res := r.conn(ctx).
		Raw(`UPDATE employees SET balance = balance + ?, updated_at = NOW() WHERE id = ? RETURNING balance`, delta, id).
		Scan(&row)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return row.Balance, nil
}

// DeductFromBalance subtracts amount only while the stored balance still
// covers it, so concurrent writers can never overdraw the row.
func (r *repository) DeductFromBalance(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	var row balanceRow
	res := r.conn(ctx).
		Raw(`UPDATE employees SET balance = balance - ?, updated_at = NOW() WHERE id = ? AND balance >= ? RETURNING balance`, amount, id, amount).
		Scan(&row)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, employeeerrors.ErrBalanceConflict
	}
	return row.Balance, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Employee{}, "id = ?", id).Error
}
