package consumer

import (
	"context"
	"time"

	"go-payroll-ledger/internal/ledger"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	defaultRetryBackoff    = 500 * time.Millisecond
	defaultMaxRetryBackoff = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Withdrawer is satisfied by ledger.Service.
type Withdrawer interface {
	Withdraw(ctx context.Context, employeeID string, amount decimal.Decimal) (ledger.WithdrawResult, error)
}

// Config tunes how long a failing message waits before it is tried again.
// Dedup is optional; without it a redelivered request is applied again.
type Config struct {
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
	Dedup           Deduplicator
}

func (c Config) withDefaults() Config {
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.MaxRetryBackoff < c.RetryBackoff {
		c.MaxRetryBackoff = max(defaultMaxRetryBackoff, c.RetryBackoff)
	}
	return c
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
