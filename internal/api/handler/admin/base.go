package admin

import (
	"context"

	"arogya/queue-service/internal/domain"
)

// AdminHandler serves the counter flow: calling the next waiting token and
// resetting the queue.
type AdminHandler struct {
	ledger ledgerService
}

type ledgerService interface {
	CallNext(ctx context.Context, actor domain.Actor) (*domain.Token, error)
	ResetQueue(ctx context.Context, actor domain.Actor) (int, error)
}

func New(ledger ledgerService) *AdminHandler {
	return &AdminHandler{
		ledger: ledger,
	}
}
