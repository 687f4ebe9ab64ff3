package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
)

// Emit hands one event to the background workers. The enqueue is
// non-blocking: if the channel is full, the event is persisted to the DLQ
// table synchronously instead (fast insert) so it is never lost.
func (e *Emitter) Emit(ctx context.Context, ev domain.NotificationEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		e.logger.Error(errors.Wrap(err, "notify: failed to marshal event"))
		return
	}

	km := domain.KafkaMessage{
		Key:      strconv.Itoa(ev.UserID),
		Payload:  payload,
		Topic:    constant.TopicNotifications,
		Attempts: 0,
	}

	select {
	case e.workChan <- km:
	default:
		if err := e.dlqRepository.InsertDLQ(ctx, km); err != nil {
			e.logger.Error(errors.Wrap(err, "CRITICAL: notify dlq insert failed"))
		}
	}
}

// ProduceMessages drains the work channel and writes to Kafka with retries.
// Run one goroutine per worker.
func (e *Emitter) ProduceMessages(workerID int) {
	for km := range e.workChan {
		success := false
		for attempt := 0; attempt < constant.KafkaWriteRetries; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), constant.KafkaWriteTimeout)
			err := e.writer.WriteMessages(ctx, kafka.Message{
				Key:   []byte(km.Key),
				Value: km.Payload,
				Time:  time.Now(),
			})
			cancel()
			if err == nil {
				success = true
				break
			}
			e.logger.Warnf("notify worker %d: write attempt %d failed: %v", workerID, attempt+1, err)
			time.Sleep(constant.KafkaRetryBackoff * time.Duration(attempt+1))
		}
		if !success {
			km.Attempts += constant.KafkaWriteRetries
			if err := e.dlqRepository.InsertDLQ(context.Background(), km); err != nil {
				e.logger.Errorf("notify worker %d: failed to insert dlq: %v", workerID, err)
			}
		}
	}
}

// Stop closes the work channel; workers exit after draining it.
func (e *Emitter) Stop() {
	close(e.workChan)
}
