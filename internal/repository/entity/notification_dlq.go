package entity

import "time"

// NotificationDlq holds notification events that could not be produced to
// Kafka, so they can be replayed out of band.
type NotificationDlq struct {
	Id            int64 `gorm:"primaryKey"`
	Topic         string
	Key           string
	Payload       []byte
	AttemptCount  int
	LastAttemptAt time.Time
}

func (NotificationDlq) TableName() string {
	return "notification_dlq"
}
