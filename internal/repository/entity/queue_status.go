package entity

import (
	"time"

	"arogya/queue-service/internal/domain"
)

// QueueStatus is the singleton counter row. It is created once by the
// initial migration and only ever updated, never deleted.
type QueueStatus struct {
	Id           int `gorm:"primaryKey"`
	CurrentToken int
	LastToken    int
	IsActive     bool
	UpdatedAt    time.Time
}

func (QueueStatus) TableName() string {
	return "queue_status"
}

func (s QueueStatus) ToDomain() domain.QueueStatus {
	return domain.QueueStatus{
		CurrentToken: s.CurrentToken,
		LastToken:    s.LastToken,
		IsActive:     s.IsActive,
		UpdatedAt:    s.UpdatedAt,
	}
}
