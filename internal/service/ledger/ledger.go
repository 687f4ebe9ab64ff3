package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/predict"
)

// IssueToken hands the next sequence number to the actor. Fails with
// DuplicateActiveTokenErr while the actor still has a token in play.
func (l *Ledger) IssueToken(ctx context.Context, actor domain.Actor) (*domain.IssueResult, error) {
	if actor.UserID <= 0 {
		return nil, errors.Wrap(constant.UnauthorizedErr, "issue token")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		result domain.IssueResult
		token  domain.Token
	)

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		existing, err := tx.ActiveTokenForUser(actor.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.Wrapf(constant.DuplicateActiveTokenErr, "token #%d is %s", existing.Number, existing.Status)
		}

		status, err := tx.Status()
		if err != nil {
			return err
		}

		number := status.LastToken + 1
		token = domain.Token{
			Number:    number,
			UserID:    actor.UserID,
			Status:    domain.StatusWaiting,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.CreateToken(&token); err != nil {
			return err
		}

		status.LastToken = number
		if err := tx.SaveStatus(status); err != nil {
			return err
		}

		if err := tx.AppendHistory(domain.HistoryEntry{
			TokenNumber: number,
			UserID:      actor.UserID,
			Action:      domain.ActionCreated,
			CreatedAt:   token.CreatedAt,
		}); err != nil {
			return err
		}

		position := number - status.CurrentToken
		result = domain.IssueResult{
			Number: number,
			// everyone still strictly ahead in line
			EstimatedWait: predict.Wait(position-1, l.avgServiceMinutes, nil),
			Position:      position,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.refreshSnapshot(ctx)
	l.notifyStaffOfNewToken(ctx, token)

	return &result, nil
}

// CallNext pulls the lowest-numbered waiting token to the counter.
func (l *Ledger) CallNext(ctx context.Context, actor domain.Actor) (*domain.Token, error) {
	if !actor.Is(domain.RoleAdmin) {
		return nil, errors.Wrap(constant.UnauthorizedErr, "call next")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var called domain.Token

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		next, err := tx.LowestWaiting()
		if err != nil {
			return err
		}
		if next == nil {
			return errors.Wrap(constant.EmptyQueueErr, "call next")
		}

		now := time.Now().UTC()
		next.Status = domain.StatusCalled
		next.CalledAt = &now
		if err := tx.SaveToken(next); err != nil {
			return err
		}

		status, err := tx.Status()
		if err != nil {
			return err
		}
		if next.Number > status.CurrentToken {
			status.CurrentToken = next.Number
			if err := tx.SaveStatus(status); err != nil {
				return err
			}
		}

		if err := tx.AppendHistory(domain.HistoryEntry{
			TokenNumber: next.Number,
			UserID:      next.UserID,
			Action:      domain.ActionCalled,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		called = *next
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.refreshSnapshot(ctx)
	l.emitter.Emit(ctx, domain.NotificationEvent{
		UserID:  called.UserID,
		TokenID: &called.ID,
		Message: fmt.Sprintf("Token #%d is now being called. Please proceed to the counter.", called.Number),
		Type:    domain.NotifyTokenCalled,
	})

	return &called, nil
}

// CallToDoctor moves a waiting token straight into a consultation with the
// given doctor, even out of numeric order. current_token only ever moves
// up: it becomes the called number when that exceeds it.
func (l *Ledger) CallToDoctor(ctx context.Context, actor domain.Actor, tokenID int64, doctorID int) (*domain.Token, error) {
	if !actor.Is(domain.RoleDoctor, domain.RoleAdmin) {
		return nil, errors.Wrap(constant.UnauthorizedErr, "call to doctor")
	}
	if doctorID <= 0 {
		return nil, errors.Wrap(constant.InvalidArgumentErr, "doctor id is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var called domain.Token

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		token, err := tx.TokenByID(tokenID)
		if err != nil {
			return err
		}
		if token.Status != domain.StatusWaiting {
			return errors.Wrapf(constant.InvalidTransitionErr, "token #%d is %s, not waiting", token.Number, token.Status)
		}

		now := time.Now().UTC()
		token.Status = domain.StatusWithDoctor
		token.DoctorID = &doctorID
		token.CalledAt = &now
		if err := tx.SaveToken(token); err != nil {
			return err
		}

		status, err := tx.Status()
		if err != nil {
			return err
		}
		if token.Number > status.CurrentToken {
			status.CurrentToken = token.Number
			if err := tx.SaveStatus(status); err != nil {
				return err
			}
		}

		if err := tx.AppendHistory(domain.HistoryEntry{
			TokenNumber: token.Number,
			UserID:      token.UserID,
			Action:      domain.ActionCalledToDoctor,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		called = *token
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.refreshSnapshot(ctx)
	l.emitter.Emit(ctx, domain.NotificationEvent{
		UserID:  called.UserID,
		TokenID: &called.ID,
		Message: fmt.Sprintf("Token #%d - Doctor is ready to see you. Please proceed to the consultation room.", called.Number),
		Type:    domain.NotifyTokenCalled,
	})

	return &called, nil
}

// AttachSuggestion records a doctor's advisory on a token currently in
// consultation. It is not a state transition.
func (l *Ledger) AttachSuggestion(ctx context.Context, actor domain.Actor, tokenID int64, text string, medicines []string, notes string) (int64, error) {
	if !actor.Is(domain.RoleDoctor, domain.RoleAdmin) {
		return 0, errors.Wrap(constant.UnauthorizedErr, "attach suggestion")
	}
	if text == "" {
		return 0, errors.Wrap(constant.InvalidArgumentErr, "suggestion text is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		suggestion domain.Suggestion
		owner      domain.Token
	)

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		token, err := tx.TokenByID(tokenID)
		if err != nil {
			return err
		}
		if token.Status != domain.StatusWithDoctor {
			return errors.Wrapf(constant.InvalidTransitionErr, "token #%d is %s, not with a doctor", token.Number, token.Status)
		}

		suggestion = domain.Suggestion{
			TokenID:   tokenID,
			DoctorID:  actor.UserID,
			Text:      text,
			Medicines: medicines,
			Notes:     notes,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.CreateSuggestion(&suggestion); err != nil {
			return err
		}

		owner = *token
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.emitter.Emit(ctx, domain.NotificationEvent{
		UserID:  owner.UserID,
		TokenID: &owner.ID,
		Message: "Doctor has added suggestions for your visit. Please check your suggestions.",
		Type:    domain.NotifySuggestionAdded,
	})

	return suggestion.ID, nil
}

// CompleteToken finishes a consultation.
func (l *Ledger) CompleteToken(ctx context.Context, actor domain.Actor, tokenID int64) (*domain.Token, error) {
	if !actor.Is(domain.RoleDoctor, domain.RoleAdmin) {
		return nil, errors.Wrap(constant.UnauthorizedErr, "complete token")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var completed domain.Token

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		token, err := tx.TokenByID(tokenID)
		if err != nil {
			return err
		}
		if token.Status != domain.StatusWithDoctor {
			return errors.Wrapf(constant.InvalidTransitionErr, "token #%d is %s, not with a doctor", token.Number, token.Status)
		}

		now := time.Now().UTC()
		token.Status = domain.StatusCompleted
		token.CompletedAt = &now
		if err := tx.SaveToken(token); err != nil {
			return err
		}

		if err := tx.AppendHistory(domain.HistoryEntry{
			TokenNumber: token.Number,
			UserID:      token.UserID,
			Action:      domain.ActionCompleted,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		completed = *token
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.refreshSnapshot(ctx)
	l.emitter.Emit(ctx, domain.NotificationEvent{
		UserID:  completed.UserID,
		TokenID: &completed.ID,
		Message: "Your consultation is complete. Thank you for visiting!",
		Type:    domain.NotifyConsultationComplete,
	})

	return &completed, nil
}

// ResetQueue cancels every active token and starts a new numbering epoch.
// Cancelled tokens stay cancelled; their numbers may be reissued.
func (l *Ledger) ResetQueue(ctx context.Context, actor domain.Actor) (int, error) {
	if !actor.Is(domain.RoleAdmin) {
		return 0, errors.Wrap(constant.UnauthorizedErr, "reset queue")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var cancelled []domain.Token

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		active, err := tx.ActiveTokens()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range active {
			token := &active[i]
			token.Status = domain.StatusCancelled
			token.CompletedAt = &now
			if err := tx.SaveToken(token); err != nil {
				return err
			}
			if err := tx.AppendHistory(domain.HistoryEntry{
				TokenNumber: token.Number,
				UserID:      token.UserID,
				Action:      domain.ActionReset,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		status, err := tx.Status()
		if err != nil {
			return err
		}
		status.CurrentToken = 0
		status.LastToken = 0
		if err := tx.SaveStatus(status); err != nil {
			return err
		}

		cancelled = active
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.refreshSnapshot(ctx)
	for _, token := range cancelled {
		l.emitter.Emit(ctx, domain.NotificationEvent{
			UserID:  token.UserID,
			TokenID: &token.ID,
			Message: "The queue has been reset. Please generate a new token.",
			Type:    domain.NotifyQueueReset,
		})
	}

	return len(cancelled), nil
}

func (l *Ledger) notifyStaffOfNewToken(ctx context.Context, token domain.Token) {
	ownerName, err := l.users.UserName(ctx, token.UserID)
	if err != nil {
		l.logger.Warnf("failed to resolve owner of token #%d: %v", token.Number, err)
		ownerName = "Guest"
	}

	admins, err := l.users.UserIDsByRole(ctx, domain.RoleAdmin)
	if err != nil {
		l.logger.Warnf("failed to list admins: %v", err)
	}
	for _, id := range admins {
		l.emitter.Emit(ctx, domain.NotificationEvent{
			UserID:  id,
			TokenID: &token.ID,
			Message: fmt.Sprintf("New token #%d generated by %s", token.Number, ownerName),
			Type:    domain.NotifyTokenGenerated,
		})
	}

	doctors, err := l.users.UserIDsByRole(ctx, domain.RoleDoctor)
	if err != nil {
		l.logger.Warnf("failed to list doctors: %v", err)
	}
	for _, id := range doctors {
		l.emitter.Emit(ctx, domain.NotificationEvent{
			UserID:  id,
			TokenID: &token.ID,
			Message: fmt.Sprintf("New patient in queue: Token #%d - %s", token.Number, ownerName),
			Type:    domain.NotifyNewPatient,
		})
	}
}
