package app

import (
	"context"
	"fmt"

	"go-payroll-ledger/internal/bootstrap"
	"go-payroll-ledger/internal/config"
	"go-payroll-ledger/internal/events"
	"go-payroll-ledger/internal/messaging/kafka/consumer"
	"go-payroll-ledger/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer applies withdrawal requests from Kafka until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	inf, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer inf.close()

	inf.redis, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
	if err != nil {
		return err
	}

	ledgerService, err := newLedgerService(cfg, inf)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.WithdrawalRequestedTopic,
		GroupID:        cfg.Kafka.GroupID + "-withdrawals",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeWithdrawalRequests(ctx, reader, ledgerService, logger, consumer.Config{
			Dedup: consumer.NewRedisDeduplicator(inf.redis),
		})
	}()

	bootstrap.WaitForSignal()

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
