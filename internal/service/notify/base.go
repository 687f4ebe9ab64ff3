package notify

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
)

// Emitter fans ledger notification events out to Kafka without ever
// blocking, or failing, the state transition that produced them.
type Emitter struct {
	writer        kafkaWriter
	dlqRepository dlqRepository
	logger        *logrus.Logger
	workChan      chan domain.KafkaMessage
}

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type dlqRepository interface {
	InsertDLQ(ctx context.Context, km domain.KafkaMessage) error
}

func NewEmitter(
	writer kafkaWriter,
	dlqRepo dlqRepository,
	logger *logrus.Logger,
) *Emitter {
	return &Emitter{
		writer:        writer,
		dlqRepository: dlqRepo,
		logger:        logger,
		workChan:      make(chan domain.KafkaMessage, constant.NotifyWorkerBufSize),
	}
}
