package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

func (nr *NotificationRepository) Insert(ctx context.Context, ev domain.NotificationEvent) error {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := gorm.G[entity.Notification](nr.db).Create(ctx, &entity.Notification{
		UserId:    ev.UserID,
		TokenId:   ev.TokenID,
		Message:   ev.Message,
		Type:      string(ev.Type),
		CreatedAt: createdAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert notification")
	}

	return nil
}

func (nr *NotificationRepository) ByUser(ctx context.Context, userID, limit, offset int) ([]domain.Notification, int64, error) {
	total, err := gorm.G[entity.Notification](nr.db).
		Where("user_id = ?", userID).
		Count(ctx, "id")
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count notifications")
	}

	rows, err := gorm.G[entity.Notification](nr.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.ToDomain())
	}

	return notifications, total, nil
}

// MarkRead flips is_read for a notification the user owns. Marking someone
// else's notification reports NotFoundErr rather than leaking existence.
func (nr *NotificationRepository) MarkRead(ctx context.Context, id int64, userID int) error {
	rowsAffected, err := gorm.G[entity.Notification](nr.db).
		Where("id = ? AND user_id = ?", id, userID).
		Update(ctx, "is_read", true)
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}
	if rowsAffected == 0 {
		return errors.Wrapf(constant.NotFoundErr, "notification %d", id)
	}

	return nil
}
