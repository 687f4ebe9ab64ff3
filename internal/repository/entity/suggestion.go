package entity

import (
	"time"

	"github.com/lib/pq"

	"arogya/queue-service/internal/domain"
)

type Suggestion struct {
	Id             int64 `gorm:"primaryKey"`
	TokenId        int64 `gorm:"index"`
	DoctorId       int
	SuggestionText string
	Medicines      pq.StringArray `gorm:"type:text[]"`
	Notes          string
	IsRead         bool
	CreatedAt      time.Time
}

func (Suggestion) TableName() string {
	return "suggestions"
}

func (s Suggestion) ToDomain() domain.Suggestion {
	return domain.Suggestion{
		ID:        s.Id,
		TokenID:   s.TokenId,
		DoctorID:  s.DoctorId,
		Text:      s.SuggestionText,
		Medicines: []string(s.Medicines),
		Notes:     s.Notes,
		IsRead:    s.IsRead,
		CreatedAt: s.CreatedAt,
	}
}
