package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

type SuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{
		db: db,
	}
}

// ByUser lists suggestions attached to any of the user's tokens, newest
// first, joined so each row carries its token number.
func (sr *SuggestionRepository) ByUser(ctx context.Context, userID int) ([]domain.Suggestion, error) {
	var rows []struct {
		entity.Suggestion
		TokenNumber int
	}

	err := sr.db.WithContext(ctx).
		Table("suggestions").
		Select("suggestions.*, tokens.token_number").
		Joins("JOIN tokens ON tokens.id = suggestions.token_id").
		Where("tokens.user_id = ?", userID).
		Order("suggestions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list suggestions")
	}

	suggestions := make([]domain.Suggestion, 0, len(rows))
	for _, row := range rows {
		s := row.Suggestion.ToDomain()
		s.TokenNumber = row.TokenNumber
		suggestions = append(suggestions, s)
	}

	return suggestions, nil
}
