package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeType string

const (
	TypeMonthly EmployeeType = "monthly"
	TypeDaily   EmployeeType = "daily"
)

type Employee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name" validate:"required"`
	Email        string          `gorm:"uniqueIndex:uq_employee_email;not null" json:"email" validate:"required,email"`
	EmployeeType EmployeeType    `gorm:"type:varchar(16);not null" json:"employee_type" validate:"required,oneof=monthly daily"`
	BaseSalary   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"base_salary"`
	DailyRate    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"daily_rate"`
	StartDate    time.Time       `gorm:"type:date;not null" json:"start_date" validate:"required"`
	Balance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
