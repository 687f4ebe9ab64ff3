package queue

import (
	"context"

	"arogya/queue-service/internal/domain"
)

// QueueHandler serves the public status board and the audit history.
type QueueHandler struct {
	ledger  ledgerService
	history historyReader
}

type ledgerService interface {
	GetStatus(ctx context.Context) (*domain.Snapshot, error)
}

type historyReader interface {
	List(ctx context.Context, limit, offset int) ([]domain.HistoryEntry, int64, error)
}

func New(ledger ledgerService, history historyReader) *QueueHandler {
	return &QueueHandler{
		ledger:  ledger,
		history: history,
	}
}
