package domain

import (
	"context"
	"time"
)

// QueueStore is the transactional boundary the ledger mutates through.
// Everything done inside one Atomically callback commits or rolls back as
// a unit, which is what keeps history rows and state transitions paired.
type QueueStore interface {
	Atomically(ctx context.Context, fn func(tx QueueTx) error) error
}

// QueueTx is the set of reads and writes available inside one transaction.
// Lookup methods return NotFoundErr-wrapped errors when nothing matches.
type QueueTx interface {
	Status() (QueueStatus, error)
	SaveStatus(QueueStatus) error

	CreateToken(*Token) error
	SaveToken(*Token) error
	TokenByID(id int64) (*Token, error)
	TokenByNumber(number int) (*Token, error)
	ActiveTokenForUser(userID int) (*Token, error)
	LowestWaiting() (*Token, error)
	WaitingTokens(limit int) ([]Token, error)
	ActiveTokens() ([]Token, error)
	CompletedSince(since time.Time, limit int) ([]Token, error)
	CountByStatus(status TokenStatus) (int, error)

	AppendHistory(HistoryEntry) error
	CreateSuggestion(*Suggestion) error
}

// UserDirectory resolves names and staff recipients from the read-only
// users table the auth service maintains.
type UserDirectory interface {
	UserName(ctx context.Context, userID int) (string, error)
	UserIDsByRole(ctx context.Context, role Role) ([]int, error)
}
