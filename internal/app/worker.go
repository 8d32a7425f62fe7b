package app

import (
	"context"
	"fmt"

	"go-payroll-ledger/internal/bootstrap"
	"go-payroll-ledger/internal/config"
	"go-payroll-ledger/internal/messaging/kafka"
	"go-payroll-ledger/internal/messaging/kafka/producer"
	"go-payroll-ledger/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	inf, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer inf.close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(inf.sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, producer.WorkerConfig{
			PollInterval: cfg.Outbox.PollInterval,
		})
	}()

	bootstrap.WaitForSignal()

	logger.Info("worker shutting down")
	cancel()
	<-done

	return nil
}
