package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (ur *UserRepository) UserName(ctx context.Context, userID int) (string, error) {
	row, err := gorm.G[entity.User](ur.db).Where("id = ?", userID).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "Guest", nil
		}
		return "", errors.Wrap(err, "failed to read user")
	}

	return row.Name, nil
}

func (ur *UserRepository) UserIDsByRole(ctx context.Context, role domain.Role) ([]int, error) {
	rows, err := gorm.G[entity.User](ur.db).
		Where("role = ?", string(role)).
		Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users by role")
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Id)
	}

	return ids, nil
}
