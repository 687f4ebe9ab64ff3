package entity

import (
	"time"

	"arogya/queue-service/internal/domain"
)

type Notification struct {
	Id        int64 `gorm:"primaryKey"`
	UserId    int   `gorm:"index"`
	TokenId   *int64
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

func (n Notification) ToDomain() domain.Notification {
	return domain.Notification{
		ID:        n.Id,
		UserID:    n.UserId,
		TokenID:   n.TokenId,
		Message:   n.Message,
		Type:      domain.NotificationType(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
