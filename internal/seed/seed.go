// Package seed loads the two demo employees.
package seed

import (
	"context"
	"fmt"
	"time"

	"go-payroll-ledger/internal/employee"
	"go-payroll-ledger/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const seedTenure = 30 * 24 * time.Hour

// Ledger is the part of ledger.Service the seeder uses.
type Ledger interface {
	FindByEmail(ctx context.Context, email string) (*ledger.EmployeeResponse, error)
	RemoveByEmail(ctx context.Context, email string) (bool, error)
	AddEmployee(ctx context.Context, req ledger.CreateEmployeeRequest) (ledger.EmployeeResponse, error)
}

type seedEmployee struct {
	Name         string
	Email        string
	EmployeeType employee.EmployeeType
	BaseSalary   decimal.Decimal
	DailyRate    decimal.Decimal
}

var defaultEmployees = []seedEmployee{
	{Name: "User1", Email: "u1@example.com", EmployeeType: employee.TypeMonthly, BaseSalary: decimal.NewFromInt(3000)},
	{Name: "User2", Email: "u2@example.com", EmployeeType: employee.TypeDaily, DailyRate: decimal.NewFromInt(200)},
}

// Seed replaces the demo employees, starting each one thirty days before now
// with the balance earned up to yesterday.
func Seed(ctx context.Context, svc Ledger, now time.Time, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("seed")
	startDate := now.Add(-seedTenure)

	for _, e := range defaultEmployees {
		existing, err := svc.FindByEmail(ctx, e.Email)
		if err != nil {
			return fmt.Errorf("find %s: %w", e.Email, err)
		}
		if existing != nil {
			if _, err := svc.RemoveByEmail(ctx, e.Email); err != nil {
				return fmt.Errorf("remove %s: %w", e.Email, err)
			}
			log.Info("removed existing employee", zap.String("email", e.Email))
		}

		balance, err := CalculateBalance(e.BaseSalary, e.DailyRate, startDate, e.EmployeeType, now)
		if err != nil {
			return err
		}

		created, err := svc.AddEmployee(ctx, ledger.CreateEmployeeRequest{
			Name:         e.Name,
			Email:        e.Email,
			EmployeeType: string(e.EmployeeType),
			BaseSalary:   e.BaseSalary,
			DailyRate:    e.DailyRate,
			StartDate:    startDate.Format("2006-01-02"),
			Balance:      balance,
		})
		if err != nil {
			return fmt.Errorf("add %s: %w", e.Email, err)
		}

		log.Info("seeded employee",
			zap.String("employee_id", created.ID),
			zap.String("email", created.Email),
			zap.String("balance", balance.String()),
		)
	}

	return nil
}

// CalculateBalance is what an employee who started at startDate earned up
// to yesterday: round(baseSalary / days in month * days worked) for monthly
// staff and dailyRate * days worked for daily staff.
func CalculateBalance(
	baseSalary, dailyRate decimal.Decimal,
	startDate time.Time,
	employeeType employee.EmployeeType,
	now time.Time,
) (decimal.Decimal, error) {
	yesterday := now.Add(-24 * time.Hour)
	daysWorked := int64(yesterday.Sub(startDate) / (24 * time.Hour))
	if daysWorked < 0 {
		daysWorked = 0
	}
	worked := decimal.NewFromInt(daysWorked)

	switch employeeType {
	case employee.TypeMonthly:
		days := decimal.NewFromInt(int64(ledger.DaysInMonth(now)))
		return baseSalary.Div(days).Mul(worked).Round(0), nil
	case employee.TypeDaily:
		return dailyRate.Mul(worked), nil
	default:
		return decimal.Zero, fmt.Errorf("invalid employee type %q", employeeType)
	}
}
