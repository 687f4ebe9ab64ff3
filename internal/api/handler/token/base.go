package token

import (
	"context"

	"arogya/queue-service/internal/domain"
)

// TokenHandler serves the patient-facing endpoints: issuing a token and
// reading back own tokens, suggestions, and notifications.
type TokenHandler struct {
	ledger        ledgerService
	tokens        tokenReader
	suggestions   suggestionReader
	notifications notificationReader
}

type ledgerService interface {
	IssueToken(ctx context.Context, actor domain.Actor) (*domain.IssueResult, error)
}

type tokenReader interface {
	ByUser(ctx context.Context, userID, limit int) ([]domain.Token, error)
}

type suggestionReader interface {
	ByUser(ctx context.Context, userID int) ([]domain.Suggestion, error)
}

type notificationReader interface {
	ByUser(ctx context.Context, userID, limit, offset int) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, id int64, userID int) error
}

func New(
	ledger ledgerService,
	tokens tokenReader,
	suggestions suggestionReader,
	notifications notificationReader,
) *TokenHandler {
	return &TokenHandler{
		ledger:        ledger,
		tokens:        tokens,
		suggestions:   suggestions,
		notifications: notifications,
	}
}
