package ledger

import (
	"time"

	"go-payroll-ledger/internal/messaging/kafka"

	"go.uber.org/zap"
)

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("ledger.service")
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone that decides the current month during accrual.
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithConcurrency(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithOutbox queues a balance_changed event next to every new entry.
func WithOutbox(repo kafka.OutboxRepository) Option {
	return func(s *service) {
		s.outbox = repo
	}
}
