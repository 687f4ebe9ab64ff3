package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

// TokenRepository serves the read-only own-token listing. Mutations and
// dashboard reads go through QueueRepository.Atomically instead.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

func (tr *TokenRepository) ByUser(ctx context.Context, userID, limit int) ([]domain.Token, error) {
	rows, err := gorm.G[entity.Token](tr.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user tokens")
	}

	return toDomainTokens(rows), nil
}
