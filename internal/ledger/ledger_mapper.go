package ledger

import (
	"go-payroll-ledger/internal/employee"
)

func mapEmployeeToResponse(e employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		Email:        e.Email,
		EmployeeType: string(e.EmployeeType),
		BaseSalary:   e.BaseSalary,
		DailyRate:    e.DailyRate,
		StartDate:    e.StartDate.Format("2006-01-02"),
		Balance:      e.Balance,
		CreatedAt:    e.CreatedAt,
	}
}

func mapEntryToResponse(e BalanceEntry) BalanceEntryResponse {
	return BalanceEntryResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
	}
}

func mapEntriesToResponse(entries []BalanceEntry) []BalanceEntryResponse {
	out := make([]BalanceEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapEntryToResponse(e))
	}
	return out
}
