package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll-ledger/internal/messaging/kafka"
	"go-payroll-ledger/internal/messaging/kafka/mock"
	"go-payroll-ledger/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafkago.Message
	failOn   map[string]error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := w.failOn[string(m.Key)]; ok {
			return err
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func outboxEvent(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "employee",
		AggregateID:   aggregateID,
		EventType:     "balance_changed",
		Topic:         "payroll.balance.changed.v1",
		Payload:       []byte(`{"entry_id":"` + id + `"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks each event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{
			outboxEvent("o1", "emp-1"),
			outboxEvent("o2", "emp-2"),
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Len(t, writer.messages, 2)

		msg := writer.messages[0]
		assert.Equal(t, "payroll.balance.changed.v1", msg.Topic)
		assert.Equal(t, "emp-1", string(msg.Key))
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_type", Value: []byte("balance_changed")})
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-o1")})
	})

	t.Run("failed publish schedules a retry and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failOn: map[string]error{"emp-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			outboxEvent("o1", "emp-1"),
			outboxEvent("o2", "emp-2"),
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 50)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.messages, 1)
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 50)

		assert.EqualError(t, err, "db down")
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		repo.EXPECT().ListPending(cctx, 50).Return([]kafka.OutboxEvent{outboxEvent("o1", "emp-1")}, nil)

		sent, err := producer.ProcessPendingEvents(cctx, repo, &fakeWriter{}, zap.NewNop(), 50)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, sent)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), producer.WorkerConfig{PollInterval: 5 * time.Millisecond})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
