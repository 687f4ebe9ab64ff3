package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/predict"
)

// GetStatus returns the public queue snapshot. Served from the Redis cache
// when possible; a miss reads one consistent transaction under the ledger
// mutex so no partial write is ever visible.
func (l *Ledger) GetStatus(ctx context.Context) (*domain.Snapshot, error) {
	if l.cache != nil {
		if snap, ok := l.cache.Get(ctx); ok {
			return snap, nil
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(ctx, *snap)
	}

	return snap, nil
}

// Patients is the staff dashboard listing.
func (l *Ledger) Patients(ctx context.Context, actor domain.Actor) (*domain.PatientBoard, error) {
	if !actor.Is(domain.RoleDoctor, domain.RoleAdmin) {
		return nil, errors.Wrap(constant.UnauthorizedErr, "list patients")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var board domain.PatientBoard

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		status, err := tx.Status()
		if err != nil {
			return err
		}

		waiting, err := tx.WaitingTokens(0)
		if err != nil {
			return err
		}
		board.Waiting = make([]domain.WaitingPatient, 0, len(waiting))
		for _, t := range waiting {
			board.Waiting = append(board.Waiting, domain.WaitingPatient{
				TokenID:       t.ID,
				Number:        t.Number,
				UserID:        t.UserID,
				UserName:      l.lookupName(ctx, t.UserID),
				CreatedAt:     t.CreatedAt,
				EstimatedWait: predict.Wait(t.Number-status.CurrentToken, l.avgServiceMinutes, nil),
			})
		}

		active, err := tx.ActiveTokens()
		if err != nil {
			return err
		}
		for _, t := range active {
			if t.Status != domain.StatusWithDoctor {
				continue
			}
			board.WithDoctor = append(board.WithDoctor, domain.InServicePatient{
				TokenID:  t.ID,
				Number:   t.Number,
				UserID:   t.UserID,
				UserName: l.lookupName(ctx, t.UserID),
				DoctorID: t.DoctorID,
				CalledAt: t.CalledAt,
			})
		}

		now := time.Now()
		todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		completed, err := tx.CompletedSince(todayStart, 10)
		if err != nil {
			return err
		}
		for _, t := range completed {
			board.Completed = append(board.Completed, domain.ServedPatient{
				Number:      t.Number,
				UserName:    l.lookupName(ctx, t.UserID),
				CompletedAt: t.CompletedAt,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &board, nil
}

// buildSnapshot assembles the status board inside one transaction.
// Callers hold the mutex.
func (l *Ledger) buildSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var snap domain.Snapshot

	err := l.store.Atomically(ctx, func(tx domain.QueueTx) error {
		status, err := tx.Status()
		if err != nil {
			return err
		}
		snap.CurrentToken = status.CurrentToken
		snap.LastToken = status.LastToken
		snap.IsActive = status.IsActive

		if snap.WaitingCount, err = tx.CountByStatus(domain.StatusWaiting); err != nil {
			return err
		}
		if snap.WithDoctorCount, err = tx.CountByStatus(domain.StatusWithDoctor); err != nil {
			return err
		}

		next, err := tx.WaitingTokens(constant.NextTokensInStatus)
		if err != nil {
			return err
		}
		snap.NextTokens = make([]domain.NextToken, 0, len(next))
		for _, t := range next {
			snap.NextTokens = append(snap.NextTokens, domain.NextToken{
				Number:    t.Number,
				UserID:    t.UserID,
				UserName:  l.lookupName(ctx, t.UserID),
				CreatedAt: t.CreatedAt,
			})
		}
		if len(next) > 0 {
			snap.EstimatedWait = predict.Wait(next[0].Number-status.CurrentToken, l.avgServiceMinutes, nil)
		}

		if status.CurrentToken > 0 {
			current, err := tx.TokenByNumber(status.CurrentToken)
			if err != nil && !errors.Is(err, constant.NotFoundErr) {
				return err
			}
			if current != nil {
				snap.CurrentDetail = &domain.CurrentDetail{
					Number:   current.Number,
					UserID:   current.UserID,
					UserName: l.lookupName(ctx, current.UserID),
					Status:   current.Status,
					DoctorID: current.DoctorID,
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// refreshSnapshot rebuilds the cached snapshot after a committed mutation.
// Callers hold the mutex, which keeps cache writes in mutation order.
func (l *Ledger) refreshSnapshot(ctx context.Context) {
	if l.cache == nil {
		return
	}

	snap, err := l.buildSnapshot(ctx)
	if err != nil {
		l.logger.Warnf("failed to rebuild queue snapshot: %v", err)
		return
	}

	l.cache.Set(ctx, *snap)
}

func (l *Ledger) lookupName(ctx context.Context, userID int) string {
	name, err := l.users.UserName(ctx, userID)
	if err != nil {
		l.logger.Warnf("failed to resolve user %d: %v", userID, err)
		return "Guest"
	}
	return name
}
