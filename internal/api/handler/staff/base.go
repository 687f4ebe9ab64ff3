package staff

import (
	"context"

	"arogya/queue-service/internal/domain"
)

// StaffHandler serves the doctor/admin flows: the dashboard, pulling a
// patient into consultation, suggestions, and completion.
type StaffHandler struct {
	ledger ledgerService
}

type ledgerService interface {
	Patients(ctx context.Context, actor domain.Actor) (*domain.PatientBoard, error)
	CallToDoctor(ctx context.Context, actor domain.Actor, tokenID int64, doctorID int) (*domain.Token, error)
	AttachSuggestion(ctx context.Context, actor domain.Actor, tokenID int64, text string, medicines []string, notes string) (int64, error)
	CompleteToken(ctx context.Context, actor domain.Actor, tokenID int64) (*domain.Token, error)
}

func New(ledger ledgerService) *StaffHandler {
	return &StaffHandler{
		ledger: ledger,
	}
}
