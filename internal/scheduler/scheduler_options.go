package scheduler

import (
	"time"

	"go-payroll-ledger/internal/bootstrap"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Option func(*Scheduler)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger.Named("scheduler.accrual")
		}
	}
}

// WithRedis enables the cross-instance locks. Without it only the
// in-process guards apply.
func WithRedis(rdb redis.Cmdable) Option {
	return func(s *Scheduler) { s.rdb = rdb }
}

func WithAuditLogger(audit bootstrap.AuditLogger) Option {
	return func(s *Scheduler) { s.audit = audit }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInstanceID sets the value written to the Redis locks.
func WithInstanceID(id string) Option {
	return func(s *Scheduler) {
		if id != "" {
			s.instanceID = id
		}
	}
}
