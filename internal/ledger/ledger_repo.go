package ledger

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *BalanceEntry) error
	FindByEmployee(ctx context.Context, employeeID string) ([]BalanceEntry, error)
	FindByEmployees(ctx context.Context, employeeIDs []string) ([]BalanceEntry, error)
	SumByEmployee(ctx context.Context, employeeID string) (decimal.Decimal, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, entry *BalanceEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.conn(ctx).Create(entry).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]BalanceEntry, error) {
	var entries []BalanceEntry
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByEmployees(ctx context.Context, employeeIDs []string) ([]BalanceEntry, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	var entries []BalanceEntry
	err := r.conn(ctx).
		Where("employee_id IN ?", employeeIDs).
		Order("employee_id ASC, date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) SumByEmployee(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.conn(ctx).
		Model(&BalanceEntry{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("employee_id = ?", employeeID).
		Scan(&row).Error
	return row.Total, err
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res := r.conn(ctx).Delete(&BalanceEntry{}, "employee_id = ?", employeeID)
	return res.RowsAffected, res.Error
}
