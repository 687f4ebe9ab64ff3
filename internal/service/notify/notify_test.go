package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkg/errors"

	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/service/notify"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	failAll  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failAll {
		return errors.New("broker unreachable")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.messages)
}

type fakeDlq struct {
	mu      sync.Mutex
	entries []domain.KafkaMessage
}

func (d *fakeDlq) InsertDLQ(_ context.Context, km domain.KafkaMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, km)
	return nil
}

func (d *fakeDlq) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestEmitter_DeliversToKafka(t *testing.T) {
	writer := &fakeWriter{}
	dlq := &fakeDlq{}
	em := notify.NewEmitter(writer, dlq, quietLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		em.ProduceMessages(0)
	}()

	em.Emit(context.Background(), domain.NotificationEvent{
		UserID:  7,
		Message: "Token #3 is now being called. Please proceed to the counter.",
		Type:    domain.NotifyTokenCalled,
	})
	em.Stop()
	wg.Wait()

	require.Equal(t, 1, writer.count())
	assert.Zero(t, dlq.count())

	msg := writer.messages[0]
	assert.Equal(t, "7", string(msg.Key))

	var ev domain.NotificationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, domain.NotifyTokenCalled, ev.Type)
}

func TestEmitter_FallsBackToDlqWhenKafkaDown(t *testing.T) {
	writer := &fakeWriter{failAll: true}
	dlq := &fakeDlq{}
	em := notify.NewEmitter(writer, dlq, quietLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		em.ProduceMessages(0)
	}()

	em.Emit(context.Background(), domain.NotificationEvent{
		UserID:  9,
		Message: "The queue has been reset. Please generate a new token.",
		Type:    domain.NotifyQueueReset,
	})
	em.Stop()
	wg.Wait()

	require.Equal(t, 1, dlq.count())
	entry := dlq.entries[0]
	assert.Equal(t, "9", entry.Key)
	assert.Greater(t, entry.Attempts, 0)
}

func TestEmitter_EmitNeverBlocks(t *testing.T) {
	writer := &fakeWriter{}
	dlq := &fakeDlq{}
	em := notify.NewEmitter(writer, dlq, quietLogger())

	// no worker running: Emit still returns promptly
	done := make(chan struct{})
	go func() {
		em.Emit(context.Background(), domain.NotificationEvent{UserID: 1, Type: domain.NotifyTokenGenerated})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked without a running worker")
	}
}
