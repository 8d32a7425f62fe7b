package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-payroll-ledger/internal/events"
	"go-payroll-ledger/internal/shared/contextutil"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeWithdrawalRequests applies withdrawal requests from Kafka until ctx is done.
// Rejected withdrawals are committed. A system failure is retried in place
// with backoff, so no later offset is committed past it.
func ConsumeWithdrawalRequests(
	ctx context.Context,
	reader MessageReader,
	withdrawer Withdrawer,
	logger *zap.Logger,
	cfg Config,
) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.consumer.withdrawal")
	cfg = cfg.withDefaults()
	log.Info("withdrawal consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("withdrawal consumer stopped")
				return
			}
			log.Error("fetch withdrawal message failed", zap.Error(err))
			continue
		}

		if !handleUntilDone(ctx, msg, withdrawer, log, cfg) {
			log.Info("withdrawal consumer stopped",
				zap.Int("partition", msg.Partition),
				zap.Int64("uncommitted_offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit withdrawal message failed",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// handleUntilDone retries msg until it may be committed. It returns false
// only when ctx ends first.
func handleUntilDone(
	ctx context.Context,
	msg kafkago.Message,
	withdrawer Withdrawer,
	log *zap.Logger,
	cfg Config,
) bool {
	backoff := cfg.RetryBackoff
	for attempt := 1; ; attempt++ {
		if HandleWithdrawalMessage(ctx, msg, withdrawer, cfg.Dedup, log) {
			return true
		}

		log.Warn("withdrawal message will be retried",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		backoff = min(backoff*2, cfg.MaxRetryBackoff)
	}
}

// HandleWithdrawalMessage processes one message and reports whether it may be
// committed. dedup may be nil.
func HandleWithdrawalMessage(
	ctx context.Context,
	msg kafkago.Message,
	withdrawer Withdrawer,
	dedup Deduplicator,
	log *zap.Logger,
) bool {
	var event events.WithdrawalRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode withdrawal event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	requestID := event.RequestID
	if requestID == "" {
		requestID = headerValue(msg, "request_id")
	}
	// Only a producer-supplied id identifies a redelivery.
	if requestID == "" {
		requestID = uuid.NewString()
		dedup = nil
	}

	reqLog := log.With(
		zap.String("request_id", requestID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("amount", event.Amount.String()),
	)
	ctx = contextutil.WithRequestID(ctx, requestID)
	ctx = contextutil.WithLogger(ctx, reqLog)

	if dedup != nil {
		state, err := dedup.Claim(ctx, requestID)
		if err != nil {
			reqLog.Error("claim withdrawal request failed", zap.Error(err))
			return false
		}
		switch state {
		case ClaimCompleted:
			reqLog.Info("withdrawal request already applied, skipping")
			return true
		case ClaimInFlight:
			reqLog.Warn("withdrawal request is held by another attempt")
			return false
		}
	}

	result, err := withdrawer.Withdraw(ctx, event.EmployeeID, event.Amount)
	if err != nil {
		reqLog.Error("withdrawal failed", zap.Error(err))
		if dedup != nil {
			if err := dedup.Release(ctx, requestID); err != nil {
				reqLog.Error("release withdrawal claim failed", zap.Error(err))
			}
		}
		return false
	}

	if dedup != nil {
		if err := dedup.Complete(ctx, requestID); err != nil {
			reqLog.Error("mark withdrawal request done failed", zap.Error(err))
		}
	}

	if !result.Success {
		reqLog.Warn("withdrawal rejected", zap.String("reason", result.Message))
		return true
	}

	reqLog.Info("withdrawal applied")
	return true
}
