package repository

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/repository/entity"
)

// queueStatusRowId is the primary key of the singleton counter row created
// by the initial migration.
const queueStatusRowId = 1

type QueueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{
		db: db,
	}
}

// Atomically runs fn inside one database transaction with the standard
// short timeout. The ledger's state change and its history rows always go
// through here together.
func (qr *QueueRepository) Atomically(ctx context.Context, fn func(tx domain.QueueTx) error) error {
	ctx, cancel := context.WithTimeout(ctx, constant.DBTxTimeout)
	defer cancel()

	return qr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&queueTx{ctx: ctx, tx: tx})
	})
}

type queueTx struct {
	ctx context.Context
	tx  *gorm.DB
}

func (q *queueTx) Status() (domain.QueueStatus, error) {
	row, err := gorm.G[entity.QueueStatus](q.tx).
		Where("id = ?", queueStatusRowId).
		First(q.ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.QueueStatus{}, errors.Wrap(constant.NotFoundErr, "queue status row missing")
		}
		return domain.QueueStatus{}, errors.Wrap(err, "failed to read queue status")
	}

	return row.ToDomain(), nil
}

func (q *queueTx) SaveStatus(status domain.QueueStatus) error {
	err := q.tx.Model(&entity.QueueStatus{}).
		Where("id = ?", queueStatusRowId).
		Updates(map[string]interface{}{
			"current_token": status.CurrentToken,
			"last_token":    status.LastToken,
			"is_active":     status.IsActive,
			"updated_at":    time.Now().UTC(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to save queue status")
	}

	return nil
}

func (q *queueTx) CreateToken(t *domain.Token) error {
	row := entity.Token{
		TokenNumber: t.Number,
		UserId:      t.UserID,
		DoctorId:    t.DoctorID,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}

	if err := gorm.G[entity.Token](q.tx).Create(q.ctx, &row); err != nil {
		return errors.Wrap(err, "failed to create token")
	}

	t.ID = row.Id
	return nil
}

func (q *queueTx) SaveToken(t *domain.Token) error {
	err := q.tx.Model(&entity.Token{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"status":       string(t.Status),
			"doctor_id":    t.DoctorID,
			"called_at":    t.CalledAt,
			"completed_at": t.CompletedAt,
		}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to save token #%d", t.Number)
	}

	return nil
}

func (q *queueTx) TokenByID(id int64) (*domain.Token, error) {
	row, err := gorm.G[entity.Token](q.tx).Where("id = ?", id).First(q.ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(constant.NotFoundErr, "token %d", id)
		}
		return nil, errors.Wrap(err, "failed to read token")
	}

	t := row.ToDomain()
	return &t, nil
}

func (q *queueTx) TokenByNumber(number int) (*domain.Token, error) {
	row, err := gorm.G[entity.Token](q.tx).
		Where("token_number = ?", number).
		Order("created_at DESC").
		First(q.ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(constant.NotFoundErr, "token #%d", number)
		}
		return nil, errors.Wrap(err, "failed to read token")
	}

	t := row.ToDomain()
	return &t, nil
}

func (q *queueTx) ActiveTokenForUser(userID int) (*domain.Token, error) {
	row, err := gorm.G[entity.Token](q.tx).
		Where("user_id = ? AND status IN ?", userID, activeStatuses()).
		First(q.ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read active token")
	}

	t := row.ToDomain()
	return &t, nil
}

func (q *queueTx) LowestWaiting() (*domain.Token, error) {
	row, err := gorm.G[entity.Token](q.tx).
		Where("status = ?", string(domain.StatusWaiting)).
		Order("token_number ASC").
		First(q.ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read waiting tokens")
	}

	t := row.ToDomain()
	return &t, nil
}

// WaitingTokens lists waiting tokens in number order. limit <= 0 means all.
func (q *queueTx) WaitingTokens(limit int) ([]domain.Token, error) {
	chain := gorm.G[entity.Token](q.tx).
		Where("status = ?", string(domain.StatusWaiting)).
		Order("token_number ASC")
	if limit > 0 {
		chain = chain.Limit(limit)
	}

	rows, err := chain.Find(q.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list waiting tokens")
	}

	return toDomainTokens(rows), nil
}

func (q *queueTx) ActiveTokens() ([]domain.Token, error) {
	rows, err := gorm.G[entity.Token](q.tx).
		Where("status IN ?", activeStatuses()).
		Order("token_number ASC").
		Find(q.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active tokens")
	}

	return toDomainTokens(rows), nil
}

func (q *queueTx) CompletedSince(since time.Time, limit int) ([]domain.Token, error) {
	rows, err := gorm.G[entity.Token](q.tx).
		Where("status = ? AND completed_at >= ?", string(domain.StatusCompleted), since).
		Order("completed_at DESC").
		Limit(limit).
		Find(q.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list completed tokens")
	}

	return toDomainTokens(rows), nil
}

func (q *queueTx) CountByStatus(status domain.TokenStatus) (int, error) {
	count, err := gorm.G[entity.Token](q.tx).
		Where("status = ?", string(status)).
		Count(q.ctx, "id")
	if err != nil {
		return 0, errors.Wrap(err, "failed to count tokens")
	}

	return int(count), nil
}

func (q *queueTx) AppendHistory(h domain.HistoryEntry) error {
	err := gorm.G[entity.QueueHistory](q.tx).Create(q.ctx, &entity.QueueHistory{
		TokenNumber: h.TokenNumber,
		UserId:      h.UserID,
		Action:      string(h.Action),
		CreatedAt:   h.CreatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to append history")
	}

	return nil
}

func (q *queueTx) CreateSuggestion(s *domain.Suggestion) error {
	row := entity.Suggestion{
		TokenId:        s.TokenID,
		DoctorId:       s.DoctorID,
		SuggestionText: s.Text,
		Medicines:      pq.StringArray(s.Medicines),
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}

	if err := gorm.G[entity.Suggestion](q.tx).Create(q.ctx, &row); err != nil {
		return errors.Wrap(err, "failed to create suggestion")
	}

	s.ID = row.Id
	return nil
}

func activeStatuses() []string {
	return []string{
		string(domain.StatusWaiting),
		string(domain.StatusCalled),
		string(domain.StatusWithDoctor),
	}
}

func toDomainTokens(rows []entity.Token) []domain.Token {
	tokens := make([]domain.Token, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.ToDomain())
	}
	return tokens
}
