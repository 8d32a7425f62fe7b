// Package scheduler runs the daily accrual on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go-payroll-ledger/internal/bootstrap"
	"go-payroll-ledger/internal/ledger"
	ledgererrors "go-payroll-ledger/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSpec = "0 0 * * *"

	dailyLockPrefix = "payroll:accrual:"
	runningLockKey  = "payroll:accrual:running"

	dailyLockTTL   = 26 * time.Hour
	runningLockTTL = time.Hour

	flightKey = "accrual"

	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// releaseLockScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Accruer is satisfied by ledger.Service.
type Accruer interface {
	AccrueAll(ctx context.Context) (ledger.AccrualReport, error)
}

type Scheduler struct {
	accruer    Accruer
	spec       string
	cron       *cron.Cron
	rdb        redis.Cmdable
	audit      bootstrap.AuditLogger
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
	instanceID string

	running atomic.Bool
	flight  singleflight.Group

	mu      sync.Mutex
	stopped bool
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type runResult struct {
	report ledger.AccrualReport
	err    error
}

var _ ledger.AccrualTrigger = (*Scheduler)(nil)

// New validates spec and prepares the scheduler; call Start to begin ticking.
func New(accruer Accruer, spec string, opts ...Option) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}

	s := &Scheduler{
		accruer:    accruer,
		spec:       spec,
		logger:     zap.L().Named("scheduler.accrual"),
		loc:        time.UTC,
		now:        time.Now,
		instanceID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.baseCtx, s.cancel = context.WithCancel(context.Background())

	s.cron = cron.New(cron.WithLocation(s.loc))
	if _, err := s.cron.AddFunc(spec, s.Tick); err != nil {
		return nil, fmt.Errorf("invalid accrual schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("accrual scheduler started",
		zap.String("spec", s.spec),
		zap.String("timezone", s.loc.String()),
		zap.String("instance_id", s.instanceID),
	)
}

// Stop stops future ticks, cancels the running accrual and waits for it
// until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	s.cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("accrual scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("accrual scheduler stop timed out", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Tick is the cron job. It is skipped while a run is in flight and when
// today's accrual already ran on any instance.
func (s *Scheduler) Tick() {
	if s.running.Load() {
		s.logger.Warn("accrual tick skipped, previous run still in flight")
		return
	}

	day := s.now().In(s.loc).Format("2006-01-02")
	acquired, err := s.acquireDailyLock(s.baseCtx, day)
	if err != nil {
		s.logger.Error("accrual tick skipped, daily lock unavailable", zap.String("day", day), zap.Error(err))
		return
	}
	if !acquired {
		s.logger.Info("accrual tick skipped, already ran today", zap.String("day", day))
		return
	}

	if _, err := s.do(TriggerScheduled); err != nil {
		s.logger.Error("scheduled accrual failed", zap.String("day", day), zap.Error(err))
	}
}

// TriggerNow runs an accrual immediately, or joins the one in flight.
func (s *Scheduler) TriggerNow(ctx context.Context) (ledger.AccrualReport, error) {
	ch := s.flight.DoChan(flightKey, func() (any, error) {
		return s.run(TriggerManual), nil
	})

	select {
	case res := <-ch:
		r := res.Val.(runResult)
		return r.report, r.err
	case <-ctx.Done():
		return ledger.AccrualReport{}, ctx.Err()
	}
}

func (s *Scheduler) do(trigger string) (ledger.AccrualReport, error) {
	v, _, _ := s.flight.Do(flightKey, func() (any, error) {
		return s.run(trigger), nil
	})
	r := v.(runResult)
	return r.report, r.err
}

func (s *Scheduler) run(trigger string) runResult {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return runResult{err: context.Canceled}
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.running.Store(true)
	defer s.running.Store(false)

	ctx := s.baseCtx

	acquired, err := s.acquireRunningLock(ctx)
	if err != nil {
		return runResult{err: err}
	}
	if !acquired {
		return runResult{err: ledgererrors.ErrAccrualInProgress}
	}
	defer s.releaseRunningLock()

	log := s.logger.With(zap.String("trigger", trigger))
	log.Info("accrual run started")

	report, err := s.accruer.AccrueAll(ctx)
	s.auditRun(ctx, trigger, report, err)

	switch {
	case err == nil:
		log.Info("accrual run finished",
			zap.Int("processed", report.Processed),
			zap.String("total", report.Total.String()),
		)
	case errors.Is(err, ledgererrors.ErrPartialBatchFailure):
		log.Error("accrual run partially failed",
			zap.Int("processed", report.Processed),
			zap.Int("succeeded", report.Succeeded),
			zap.Any("failures", report.Failures),
		)
	default:
		log.Error("accrual run failed", zap.Error(err))
	}

	return runResult{report: report, err: err}
}

func (s *Scheduler) acquireDailyLock(ctx context.Context, day string) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}
	return s.rdb.SetNX(ctx, dailyLockPrefix+day, s.instanceID, dailyLockTTL).Result()
}

func (s *Scheduler) acquireRunningLock(ctx context.Context) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}
	return s.rdb.SetNX(ctx, runningLockKey, s.instanceID, runningLockTTL).Result()
}

func (s *Scheduler) releaseRunningLock() {
	if s.rdb == nil {
		return
	}
	deleted, err := releaseLockScript.Run(context.Background(), s.rdb, []string{runningLockKey}, s.instanceID).Int()
	if err != nil {
		s.logger.Warn("release accrual lock failed", zap.Error(err))
		return
	}
	if deleted == 0 {
		s.logger.Warn("accrual lock expired or taken by another instance, left in place")
	}
}

func (s *Scheduler) auditRun(ctx context.Context, trigger string, report ledger.AccrualReport, err error) {
	if s.audit == nil {
		return
	}

	status := "SUCCESS"
	if err != nil {
		status = "FAILED"
	}
	s.audit.Log(context.WithoutCancel(ctx), bootstrap.AuditLog{
		Action:  "ACCRUAL_RUN",
		Message: "Accrual run " + status,
		Meta: map[string]any{
			"trigger":     trigger,
			"instance_id": s.instanceID,
			"processed":   report.Processed,
			"succeeded":   report.Succeeded,
			"failed":      len(report.Failures),
			"total":       report.Total.String(),
		},
	})
}
