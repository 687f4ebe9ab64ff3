package entity

import (
	"time"

	"arogya/queue-service/internal/domain"
)

type Token struct {
	Id          int64 `gorm:"primaryKey"`
	TokenNumber int
	UserId      int
	DoctorId    *int
	Status      string `gorm:"index"`
	CreatedAt   time.Time
	CalledAt    *time.Time
	CompletedAt *time.Time
}

func (Token) TableName() string {
	return "tokens"
}

func (t Token) ToDomain() domain.Token {
	return domain.Token{
		ID:          t.Id,
		Number:      t.TokenNumber,
		UserID:      t.UserId,
		DoctorID:    t.DoctorId,
		Status:      domain.TokenStatus(t.Status),
		CreatedAt:   t.CreatedAt,
		CalledAt:    t.CalledAt,
		CompletedAt: t.CompletedAt,
	}
}
