package events

import "time"

const BalanceChangedTopic = "payroll.balance.changed.v1"

const BalanceChangedEventType = "balance_changed"

// BalanceChangedEvent mirrors one BalanceEntry together with the balance it produced.
type BalanceChangedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	EntryID     string    `json:"entry_id"`
	EmployeeID  string    `json:"employee_id"`
	Amount      string    `json:"amount"`
	Balance     string    `json:"balance"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
