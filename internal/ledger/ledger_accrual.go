package ledger

import (
	"time"

	"go-payroll-ledger/internal/employee"

	"github.com/shopspring/decimal"
)

// DaysInMonth counts the days of t's month in t's location.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// AccrualAmount is the deposit one accrual run pays to e. Monthly staff get
// floor(baseSalary / days in the current month), daily staff their daily
// rate. ok is false for an employee type without a pay rule.
func AccrualAmount(e employee.Employee, now time.Time) (amount decimal.Decimal, ok bool) {
	switch e.EmployeeType {
	case employee.TypeMonthly:
		days := decimal.NewFromInt(int64(DaysInMonth(now)))
		return e.BaseSalary.Div(days).Floor(), true
	case employee.TypeDaily:
		return e.DailyRate, true
	default:
		return decimal.Zero, false
	}
}
