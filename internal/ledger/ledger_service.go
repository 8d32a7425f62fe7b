package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go-payroll-ledger/internal/employee"
	employeeerrors "go-payroll-ledger/internal/employee/errors"
	"go-payroll-ledger/internal/events"
	ledgererrors "go-payroll-ledger/internal/ledger/errors"
	"go-payroll-ledger/internal/messaging/kafka"
	"go-payroll-ledger/internal/shared/apperror"
	"go-payroll-ledger/internal/shared/contextutil"
	"go-payroll-ledger/internal/shared/keylock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultAccrualConcurrency = 4
	centsPlaces               = 2
)

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	AddEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	ListEmployees(ctx context.Context) ([]EmployeeWithHistoryResponse, error)
	FindByEmail(ctx context.Context, email string) (*EmployeeResponse, error)
	RemoveByEmail(ctx context.Context, email string) (bool, error)
	DeleteHistoryFor(ctx context.Context, employeeID string) (int64, error)
	AccrueAll(ctx context.Context) (AccrualReport, error)
	ApplyDelta(ctx context.Context, employeeID string, amount decimal.Decimal, description string) (BalanceEntryResponse, error)
	Withdraw(ctx context.Context, employeeID string, amount decimal.Decimal) (WithdrawResult, error)
	GetStatement(ctx context.Context, employeeID string) (StatementResponse, error)
}

// service is the only writer of employee balances and balance entries.
type service struct {
	db          *sql.DB
	employees   employee.Repository
	entries     Repository
	outbox      kafka.OutboxRepository
	locks       *keylock.KeyLock
	logger      *zap.Logger
	now         func() time.Time
	loc         *time.Location
	concurrency int
}

func NewService(
	db *sql.DB,
	employees employee.Repository,
	entries Repository,
	opts ...Option,
) Service {
	s := &service{
		db:          db,
		employees:   employees,
		entries:     entries,
		locks:       keylock.New(),
		logger:      zap.L().Named("ledger.service"),
		now:         time.Now,
		loc:         time.UTC,
		concurrency: defaultAccrualConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) AddEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Start Date")
	}
	if !isWholeCents(req.Balance) {
		return EmployeeResponse{}, apperror.InvalidField("Balance")
	}

	now := s.now()
	empl := &employee.Employee{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		EmployeeType: employee.EmployeeType(req.EmployeeType),
		BaseSalary:   req.BaseSalary,
		DailyRate:    req.DailyRate,
		StartDate:    startDate,
		Balance:      req.Balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.employees.WithTx(tx).Create(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if _, err := s.recordEntry(ctx, tx, empl.ID, empl.Balance, DescriptionInitial, empl.Balance); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	log.Info("employee added",
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_type", string(empl.EmployeeType)),
		zap.String("balance", empl.Balance.String()),
	)

	return mapEmployeeToResponse(*empl), nil
}

func (s *service) ListEmployees(ctx context.Context) ([]EmployeeWithHistoryResponse, error) {
	empls, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ids := make([]string, 0, len(empls))
	for _, e := range empls {
		ids = append(ids, e.ID.String())
	}

	entries, err := s.entries.FindByEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]BalanceEntryResponse, len(empls))
	for _, entry := range entries {
		key := entry.EmployeeID.String()
		byEmployee[key] = append(byEmployee[key], mapEntryToResponse(entry))
	}

	out := make([]EmployeeWithHistoryResponse, 0, len(empls))
	for _, e := range empls {
		history := byEmployee[e.ID.String()]
		if history == nil {
			history = []BalanceEntryResponse{}
		}
		out = append(out, EmployeeWithHistoryResponse{
			EmployeeResponse: mapEmployeeToResponse(e),
			History:          history,
		})
	}

	return out, nil
}

// FindByEmail returns nil without an error when nobody has that email.
func (s *service) FindByEmail(ctx context.Context, email string) (*EmployeeResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ledgererrors.ErrEmailRequired
	}

	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, mapped
	}

	resp := mapEmployeeToResponse(*empl)
	return &resp, nil
}

// RemoveByEmail deletes the employee and its whole history in one
// transaction. It reports false when no employee has that email.
func (s *service) RemoveByEmail(ctx context.Context, email string) (bool, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, ledgererrors.ErrEmailRequired
	}

	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, mapped
	}

	id := empl.ID.String()
	unlock := s.locks.Lock(id)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	deleted, err := s.entries.WithTx(tx).DeleteByEmployee(ctx, id)
	if err != nil {
		return false, err
	}

	if err := s.employees.WithTx(tx).Delete(ctx, id); err != nil {
		return false, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	log.Info("employee removed",
		zap.String("employee_id", id),
		zap.Int64("entries_deleted", deleted),
	)

	return true, nil
}

func (s *service) DeleteHistoryFor(ctx context.Context, employeeID string) (int64, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return 0, employeeerrors.ErrInvalidEmployeeID
	}

	unlock := s.locks.Lock(id.String())
	defer unlock()

	deleted, err := s.entries.DeleteByEmployee(ctx, id.String())
	if err != nil {
		return 0, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("balance history deleted",
		zap.String("employee_id", id.String()),
		zap.Int64("entries_deleted", deleted),
	)

	return deleted, nil
}

// AccrueAll pays one accrual to every employee. Employees are independent:
// one failure never blocks or rolls back the others. All failures come back
// as a *ledgererrors.PartialBatchError next to the report.
func (s *service) AccrueAll(ctx context.Context) (AccrualReport, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	now := s.now().In(s.loc)
	report := AccrualReport{StartedAt: now, Total: decimal.Zero}

	empls, err := s.employees.FindAll(ctx)
	if err != nil {
		return report, mapRepositoryError(err)
	}

	var mu sync.Mutex
	batchErr := &ledgererrors.PartialBatchError{}

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for _, empl := range empls {
		empl := empl
		g.Go(func() error {
			id := empl.ID.String()

			amount, ok := AccrualAmount(empl, now)
			if !ok {
				log.Warn("unknown employee type, accruing zero",
					zap.String("employee_id", id),
					zap.String("employee_type", string(empl.EmployeeType)),
				)
			}

			var entry BalanceEntryResponse
			err := ctx.Err()
			if err == nil {
				entry, err = s.ApplyDelta(ctx, id, amount, DescriptionDailyDeposit)
			}

			mu.Lock()
			defer mu.Unlock()

			report.Processed++
			if err != nil {
				batchErr.Add(id, err)
				log.Error("accrual failed", zap.String("employee_id", id), zap.Error(err))
				return nil
			}
			report.Succeeded++
			report.Total = report.Total.Add(entry.Amount)
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = s.now().In(s.loc)
	report.Failures = batchErr.Failures

	log.Info("accrual finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", len(report.Failures)),
		zap.String("total", report.Total.String()),
	)

	if len(batchErr.Failures) > 0 {
		return report, batchErr
	}
	return report, nil
}

// ApplyDelta adds amount, rounded to cents, to the balance and records the
// matching entry in the same transaction. An unknown employee is an error.
func (s *service) ApplyDelta(
	ctx context.Context,
	employeeID string,
	amount decimal.Decimal,
	description string,
) (BalanceEntryResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return BalanceEntryResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	// Balance and entry columns both hold cents; rounding them apart would
	// let the two drift.
	amount = amount.Round(centsPlaces)

	unlock := s.locks.Lock(id.String())
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceEntryResponse{}, err
	}
	defer tx.Rollback()

	qemployees := s.employees.WithTx(tx)

	if _, err := qemployees.FindByID(ctx, id.String()); err != nil {
		return BalanceEntryResponse{}, mapRepositoryError(err)
	}

	balance, err := qemployees.AddToBalance(ctx, id.String(), amount)
	if err != nil {
		return BalanceEntryResponse{}, mapRepositoryError(err)
	}

	entry, err := s.recordEntry(ctx, tx, id, amount, description, balance)
	if err != nil {
		return BalanceEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BalanceEntryResponse{}, err
	}

	resp := mapEntryToResponse(entry)
	resp.Balance = &balance
	return resp, nil
}

// Withdraw takes amount out of the balance when it is covered. Unknown
// employees, overdrafts and amounts that are not positive whole cents are
// reported in the result.
func (s *service) Withdraw(ctx context.Context, employeeID string, amount decimal.Decimal) (WithdrawResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !amount.IsPositive() || !isWholeCents(amount) {
		return rejectWithdraw(ledgererrors.ErrInvalidAmount), nil
	}

	id, err := uuid.Parse(employeeID)
	if err != nil {
		return rejectWithdraw(ledgererrors.ErrUserNotFound), nil
	}

	unlock := s.locks.Lock(id.String())
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WithdrawResult{}, err
	}
	defer tx.Rollback()

	qemployees := s.employees.WithTx(tx)

	empl, err := qemployees.FindByID(ctx, id.String())
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			return rejectWithdraw(ledgererrors.ErrUserNotFound), nil
		}
		return WithdrawResult{}, mapped
	}

	if empl.Balance.LessThan(amount) {
		return rejectWithdraw(ledgererrors.ErrInsufficientBalance), nil
	}

	balance, err := qemployees.DeductFromBalance(ctx, id.String(), amount)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, ledgererrors.ErrInsufficientBalance) {
			return rejectWithdraw(ledgererrors.ErrInsufficientBalance), nil
		}
		return WithdrawResult{}, mapped
	}

	entry, err := s.recordEntry(ctx, tx, id, amount.Neg(), DescriptionWithdraw, balance)
	if err != nil {
		return WithdrawResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return WithdrawResult{}, err
	}

	log.Info("withdrawal applied",
		zap.String("employee_id", id.String()),
		zap.String("amount", amount.String()),
		zap.String("balance", balance.String()),
	)

	resp := mapEntryToResponse(entry)
	resp.Balance = &balance
	return WithdrawResult{Success: true, Entry: &resp}, nil
}

func (s *service) GetStatement(ctx context.Context, employeeID string) (StatementResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return StatementResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.employees.FindByID(ctx, id.String())
	if err != nil {
		return StatementResponse{}, mapRepositoryError(err)
	}

	entries, err := s.entries.FindByEmployee(ctx, id.String())
	if err != nil {
		return StatementResponse{}, err
	}

	sum, err := s.entries.SumByEmployee(ctx, id.String())
	if err != nil {
		return StatementResponse{}, err
	}

	consistent := sum.Equal(empl.Balance)
	if !consistent {
		contextutil.GetLogger(ctx, s.logger).Warn("ledger out of balance",
			zap.String("employee_id", id.String()),
			zap.String("balance", empl.Balance.String()),
			zap.String("ledger_sum", sum.String()),
		)
	}

	return StatementResponse{
		Employee:    mapEmployeeToResponse(*empl),
		Entries:     mapEntriesToResponse(entries),
		LedgerSum:   sum,
		Consistent:  consistent,
		GeneratedAt: s.now().In(s.loc),
	}, nil
}

// recordEntry writes the entry and, with an outbox configured, the matching
// balance_changed event on tx.
func (s *service) recordEntry(
	ctx context.Context,
	tx *sql.Tx,
	employeeID uuid.UUID,
	amount decimal.Decimal,
	description string,
	balance decimal.Decimal,
) (BalanceEntry, error) {
	entry := BalanceEntry{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Amount:      amount,
		Date:        s.now(),
		Description: description,
	}

	if err := s.entries.WithTx(tx).Create(ctx, &entry); err != nil {
		return BalanceEntry{}, err
	}

	if s.outbox == nil {
		return entry, nil
	}

	requestID := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.BalanceChangedEvent{
		EventType:   events.BalanceChangedEventType,
		RequestID:   requestID,
		EntryID:     entry.ID.String(),
		EmployeeID:  employeeID.String(),
		Amount:      amount.String(),
		Balance:     balance.String(),
		Description: description,
		OccurredAt:  entry.Date.UTC(),
	})
	if err != nil {
		return BalanceEntry{}, err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "employee",
		AggregateID:   employeeID.String(),
		EventType:     events.BalanceChangedEventType,
		Topic:         events.BalanceChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return BalanceEntry{}, err
	}

	return entry, nil
}

func isWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(centsPlaces))
}

func rejectWithdraw(reason *apperror.AppError) WithdrawResult {
	return WithdrawResult{Success: false, Message: reason.Message}
}
