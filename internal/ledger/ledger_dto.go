package ledger

import (
	"time"

	ledgererrors "go-payroll-ledger/internal/ledger/errors"

	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"required,email"`
	EmployeeType string          `json:"employee_type" binding:"required,oneof=monthly daily"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	StartDate    string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	Balance      decimal.Decimal `json:"balance"`
}

type WithdrawRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	EmployeeType string          `json:"employee_type"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	StartDate    string          `json:"start_date"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

type BalanceEntryResponse struct {
	ID          string           `json:"id"`
	EmployeeID  string           `json:"employee_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
}

type EmployeeWithHistoryResponse struct {
	EmployeeResponse
	History []BalanceEntryResponse `json:"history"`
}

// WithdrawResult reports business outcomes; only system failures are errors.
type WithdrawResult struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Entry   *BalanceEntryResponse `json:"entry,omitempty"`
}

type AccrualReport struct {
	StartedAt  time.Time                      `json:"started_at"`
	FinishedAt time.Time                      `json:"finished_at"`
	Processed  int                            `json:"processed"`
	Succeeded  int                            `json:"succeeded"`
	Total      decimal.Decimal                `json:"total"`
	Failures   []ledgererrors.EmployeeFailure `json:"failures,omitempty"`
}

type StatementResponse struct {
	Employee    EmployeeResponse       `json:"employee"`
	Entries     []BalanceEntryResponse `json:"entries"`
	LedgerSum   decimal.Decimal        `json:"ledger_sum"`
	Consistent  bool                   `json:"consistent"`
	GeneratedAt time.Time              `json:"generated_at"`
}
