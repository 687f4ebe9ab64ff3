package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

type DlqRepository struct {
	db *gorm.DB
}

func NewDlqRepository(db *gorm.DB) *DlqRepository {
	return &DlqRepository{
		db: db,
	}
}

func (dr *DlqRepository) InsertDLQ(ctx context.Context, km domain.KafkaMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return gorm.G[entity.NotificationDlq](dr.db).Create(ctx, &entity.NotificationDlq{
		Topic:         km.Topic,
		Key:           km.Key,
		Payload:       km.Payload,
		AttemptCount:  km.Attempts,
		LastAttemptAt: time.Now(),
	})
}
