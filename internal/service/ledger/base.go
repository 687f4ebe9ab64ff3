package ledger

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"arogya/queue-service/internal/domain"
)

// Ledger is the authoritative queue state machine. Every mutating
// operation runs under one mutex and one database transaction, so counter
// increments and status transitions are linearizable: no two IssueToken
// calls observe the same last_token, no two CallNext calls claim the same
// waiting token.
type Ledger struct {
	mu sync.Mutex

	store   domain.QueueStore
	users   domain.UserDirectory
	emitter emitter
	cache   *SnapshotCache
	logger  *logrus.Logger

	avgServiceMinutes float64
}

type emitter interface {
	Emit(ctx context.Context, ev domain.NotificationEvent)
}

// NewLedger wires the ledger. cache may be nil; reads then always go to
// the store.
func NewLedger(
	store domain.QueueStore,
	users domain.UserDirectory,
	em emitter,
	cache *SnapshotCache,
	logger *logrus.Logger,
	avgServiceMinutes float64,
) *Ledger {
	return &Ledger{
		store:             store,
		users:             users,
		emitter:           em,
		cache:             cache,
		logger:            logger,
		avgServiceMinutes: avgServiceMinutes,
	}
}
