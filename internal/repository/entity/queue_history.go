package entity

import (
	"time"

	"arogya/queue-service/internal/domain"
)

type QueueHistory struct {
	Id          int64 `gorm:"primaryKey"`
	TokenNumber int
	UserId      int
	Action      string
	CreatedAt   time.Time `gorm:"index"`
}

func (QueueHistory) TableName() string {
	return "queue_history"
}

func (h QueueHistory) ToDomain() domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:          h.Id,
		TokenNumber: h.TokenNumber,
		UserID:      h.UserId,
		Action:      domain.HistoryAction(h.Action),
		CreatedAt:   h.CreatedAt,
	}
}
