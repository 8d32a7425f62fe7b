package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DescriptionInitial      = "Initial"
	DescriptionDailyDeposit = "daily deposit"
	DescriptionWithdraw     = "withdraw"
)

// BalanceEntry is one immutable, signed change to an employee balance.
type BalanceEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_balance_histories_employee_date,priority:1" json:"employee_id" validate:"required"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index:idx_balance_histories_employee_date,priority:2" json:"date"`
	Description string          `gorm:"not null" json:"description" validate:"required"`
}

func (BalanceEntry) TableName() string {
	return "balance_histories"
}
