package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const WithdrawalRequestedTopic = "payroll.withdrawal.requested.v1"

type WithdrawalRequestedEvent struct {
	EventType   string          `json:"event_type"`
	RequestID   string          `json:"request_id,omitempty"`
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	RequestedAt time.Time       `json:"requested_at"`
}
