package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{
		db: db,
	}
}

func (hr *HistoryRepository) List(ctx context.Context, limit, offset int) ([]domain.HistoryEntry, int64, error) {
	total, err := gorm.G[entity.QueueHistory](hr.db).Count(ctx, "id")
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count history")
	}

	rows, err := gorm.G[entity.QueueHistory](hr.db).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list history")
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.ToDomain())
	}

	return entries, total, nil
}
