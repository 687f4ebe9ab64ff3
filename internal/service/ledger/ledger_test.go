package ledger_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/service/ledger"
)

// memStore is an in-memory domain.QueueStore. Atomically serializes
// callbacks with a mutex; rollback is not modeled because the ledger's
// operations validate before they write.
type memStore struct {
	mu          sync.Mutex
	status      domain.QueueStatus
	tokens      []*domain.Token
	history     []domain.HistoryEntry
	suggestions []*domain.Suggestion

	tokenSeq      int64
	suggestionSeq int64
}

func newMemStore() *memStore {
	return &memStore{status: domain.QueueStatus{IsActive: true}}
}

func (s *memStore) Atomically(_ context.Context, fn func(tx domain.QueueTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{s: s})
}

type memTx struct {
	s *memStore
}

func (t *memTx) Status() (domain.QueueStatus, error) { return t.s.status, nil }

func (t *memTx) SaveStatus(status domain.QueueStatus) error {
	t.s.status = status
	return nil
}

func (t *memTx) CreateToken(token *domain.Token) error {
	t.s.tokenSeq++
	token.ID = t.s.tokenSeq
	stored := *token
	t.s.tokens = append(t.s.tokens, &stored)
	return nil
}

func (t *memTx) SaveToken(token *domain.Token) error {
	for i, existing := range t.s.tokens {
		if existing.ID == token.ID {
			stored := *token
			t.s.tokens[i] = &stored
			return nil
		}
	}
	return errors.Wrapf(constant.NotFoundErr, "token %d", token.ID)
}

func (t *memTx) TokenByID(id int64) (*domain.Token, error) {
	for _, token := range t.s.tokens {
		if token.ID == id {
			found := *token
			return &found, nil
		}
	}
	return nil, errors.Wrapf(constant.NotFoundErr, "token %d", id)
}

func (t *memTx) TokenByNumber(number int) (*domain.Token, error) {
	for _, token := range t.s.tokens {
		if token.Number == number && token.Active() {
			found := *token
			return &found, nil
		}
	}
	return nil, errors.Wrapf(constant.NotFoundErr, "token #%d", number)
}

func (t *memTx) ActiveTokenForUser(userID int) (*domain.Token, error) {
	for _, token := range t.s.tokens {
		if token.UserID == userID && token.Active() {
			found := *token
			return &found, nil
		}
	}
	return nil, nil
}

func (t *memTx) LowestWaiting() (*domain.Token, error) {
	var lowest *domain.Token
	for _, token := range t.s.tokens {
		if token.Status != domain.StatusWaiting {
			continue
		}
		if lowest == nil || token.Number < lowest.Number {
			lowest = token
		}
	}
	if lowest == nil {
		return nil, nil
	}
	found := *lowest
	return &found, nil
}

func (t *memTx) WaitingTokens(limit int) ([]domain.Token, error) {
	var waiting []domain.Token
	for _, token := range t.s.tokens {
		if token.Status == domain.StatusWaiting {
			waiting = append(waiting, *token)
		}
	}
	sort.Slice(waiting, func(i, j int) bool { return waiting[i].Number < waiting[j].Number })
	if limit > 0 && len(waiting) > limit {
		waiting = waiting[:limit]
	}
	return waiting, nil
}

func (t *memTx) ActiveTokens() ([]domain.Token, error) {
	var active []domain.Token
	for _, token := range t.s.tokens {
		if token.Active() {
			active = append(active, *token)
		}
	}
	return active, nil
}

func (t *memTx) CompletedSince(since time.Time, limit int) ([]domain.Token, error) {
	var completed []domain.Token
	for _, token := range t.s.tokens {
		if token.Status == domain.StatusCompleted && token.CompletedAt != nil && !token.CompletedAt.Before(since) {
			completed = append(completed, *token)
		}
	}
	if limit > 0 && len(completed) > limit {
		completed = completed[:limit]
	}
	return completed, nil
}

func (t *memTx) CountByStatus(status domain.TokenStatus) (int, error) {
	count := 0
	for _, token := range t.s.tokens {
		if token.Status == status {
			count++
		}
	}
	return count, nil
}

func (t *memTx) AppendHistory(entry domain.HistoryEntry) error {
	entry.ID = int64(len(t.s.history) + 1)
	t.s.history = append(t.s.history, entry)
	return nil
}

func (t *memTx) CreateSuggestion(s *domain.Suggestion) error {
	t.s.suggestionSeq++
	s.ID = t.s.suggestionSeq
	stored := *s
	t.s.suggestions = append(t.s.suggestions, &stored)
	return nil
}

type memEmitter struct {
	mu     sync.Mutex
	events []domain.NotificationEvent
}

func (e *memEmitter) Emit(_ context.Context, ev domain.NotificationEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *memEmitter) ofType(typ domain.NotificationType) []domain.NotificationEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []domain.NotificationEvent
	for _, ev := range e.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type memDirectory struct {
	admins  []int
	doctors []int
}

func (d *memDirectory) UserName(_ context.Context, userID int) (string, error) {
	return fmt.Sprintf("user-%d", userID), nil
}

func (d *memDirectory) UserIDsByRole(_ context.Context, role domain.Role) ([]int, error) {
	switch role {
	case domain.RoleAdmin:
		return d.admins, nil
	case domain.RoleDoctor:
		return d.doctors, nil
	}
	return nil, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestLedger(store *memStore, em *memEmitter, dir *memDirectory) *ledger.Ledger {
	return ledger.NewLedger(store, dir, em, nil, quietLogger(), 5)
}

var (
	user   = domain.Actor{UserID: 7, Role: domain.RoleUser}
	doctor = domain.Actor{UserID: 42, Role: domain.RoleDoctor}
	admin  = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func TestIssueToken_SequentialNumbers(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.IssueToken(ctx, domain.Actor{UserID: 100 + i, Role: domain.RoleUser})
		require.NoError(t, err)
		assert.Equal(t, i, res.Number)
		assert.Equal(t, i, res.Position)
	}

	assert.Equal(t, 3, store.status.LastToken)
	assert.Equal(t, 0, store.status.CurrentToken)
	assert.Len(t, store.history, 3)
}

func TestIssueToken_WaitEstimateExcludesSelf(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	first, err := l.IssueToken(ctx, domain.Actor{UserID: 10, Role: domain.RoleUser})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, first.EstimatedWait, 0.001)

	second, err := l.IssueToken(ctx, domain.Actor{UserID: 11, Role: domain.RoleUser})
	require.NoError(t, err)
	// one person strictly ahead, 5 minutes each
	assert.InDelta(t, 5.0, second.EstimatedWait, 0.001)
}

func TestIssueToken_DuplicateActive(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	_, err := l.IssueToken(ctx, user)
	require.NoError(t, err)

	_, err = l.IssueToken(ctx, user)
	assert.ErrorIs(t, err, constant.DuplicateActiveTokenErr)
	assert.Equal(t, 1, store.status.LastToken)
}

func TestIssueToken_AnonymousRejected(t *testing.T) {
	l := newTestLedger(newMemStore(), &memEmitter{}, &memDirectory{})

	_, err := l.IssueToken(context.Background(), domain.Actor{UserID: 0, Role: domain.RoleUser})
	assert.ErrorIs(t, err, constant.UnauthorizedErr)
}

func TestIssueToken_ConcurrentIssuesStayContiguous(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	numbers := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			res, err := l.IssueToken(ctx, domain.Actor{UserID: userID, Role: domain.RoleUser})
			if err == nil {
				numbers <- res.Number
			}
		}(1000 + i)
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int]bool)
	for num := range numbers {
		assert.False(t, seen[num], "number %d issued twice", num)
		seen[num] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "number %d missing from sequence", i)
	}
	assert.Equal(t, n, store.status.LastToken)
}

func TestIssueToken_NotifiesStaff(t *testing.T) {
	em := &memEmitter{}
	l := newTestLedger(newMemStore(), em, &memDirectory{admins: []int{1}, doctors: []int{42, 43}})

	_, err := l.IssueToken(context.Background(), user)
	require.NoError(t, err)

	assert.Len(t, em.ofType(domain.NotifyTokenGenerated), 1)
	assert.Len(t, em.ofType(domain.NotifyNewPatient), 2)
}

func TestCallNext_MovesLowestWaiting(t *testing.T) {
	store := newMemStore()
	em := &memEmitter{}
	l := newTestLedger(store, em, &memDirectory{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.IssueToken(ctx, domain.Actor{UserID: 200 + i, Role: domain.RoleUser})
		require.NoError(t, err)
	}

	called, err := l.CallNext(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, called.Number)
	assert.Equal(t, domain.StatusCalled, called.Status)
	require.NotNil(t, called.CalledAt)

	assert.Equal(t, 1, store.status.CurrentToken)
	require.Len(t, em.ofType(domain.NotifyTokenCalled), 1)
	assert.Equal(t, 200, em.ofType(domain.NotifyTokenCalled)[0].UserID)
}

func TestCallNext_EmptyQueue(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})

	_, err := l.CallNext(context.Background(), admin)
	assert.ErrorIs(t, err, constant.EmptyQueueErr)
	assert.Equal(t, 0, store.status.CurrentToken)
}

func TestCallNext_AdminOnly(t *testing.T) {
	l := newTestLedger(newMemStore(), &memEmitter{}, &memDirectory{})

	_, err := l.CallNext(context.Background(), doctor)
	assert.ErrorIs(t, err, constant.UnauthorizedErr)
}

func TestCallToDoctor_OutOfOrderAdvancesCounter(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := l.IssueToken(ctx, domain.Actor{UserID: 300 + i, Role: domain.RoleUser})
		require.NoError(t, err)
	}

	// calling #1 at the counter makes it the current token
	first, err := l.CallNext(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, store.status.CurrentToken)

	// pulling #2 to a doctor advances the counter past #1
	var secondID int64
	for _, tok := range store.tokens {
		if tok.Number == 2 {
			secondID = tok.ID
		}
	}
	called, err := l.CallToDoctor(ctx, doctor, secondID, doctor.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWithDoctor, called.Status)
	require.NotNil(t, called.DoctorID)
	assert.Equal(t, doctor.UserID, *called.DoctorID)
	assert.Equal(t, 2, store.status.CurrentToken)

	// the already-called #1 cannot be pulled again, and the counter stays put
	withDoc, err := l.CallToDoctor(ctx, doctor, first.ID, doctor.UserID)
	assert.ErrorIs(t, err, constant.InvalidTransitionErr)
	assert.Nil(t, withDoc)
	assert.Equal(t, 2, store.status.CurrentToken)
}

func TestCallToDoctor_RequiresWaiting(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	_, err := l.IssueToken(ctx, user)
	require.NoError(t, err)
	called, err := l.CallNext(ctx, admin)
	require.NoError(t, err)

	_, err = l.CallToDoctor(ctx, doctor, called.ID, doctor.UserID)
	assert.ErrorIs(t, err, constant.InvalidTransitionErr)
}

func TestAttachSuggestion(t *testing.T) {
	store := newMemStore()
	em := &memEmitter{}
	l := newTestLedger(store, em, &memDirectory{})
	ctx := context.Background()

	_, err := l.IssueToken(ctx, user)
	require.NoError(t, err)
	tokenID := store.tokens[0].ID

	// suggestions are only valid during a consultation
	_, err = l.AttachSuggestion(ctx, doctor, tokenID, "rest and fluids", nil, "")
	assert.ErrorIs(t, err, constant.InvalidTransitionErr)

	_, err = l.CallToDoctor(ctx, doctor, tokenID, doctor.UserID)
	require.NoError(t, err)

	id, err := l.AttachSuggestion(ctx, doctor, tokenID, "rest and fluids", []string{"paracetamol"}, "follow up in a week")
	require.NoError(t, err)
	assert.NotZero(t, id)

	require.Len(t, store.suggestions, 1)
	assert.Equal(t, doctor.UserID, store.suggestions[0].DoctorID)
	assert.Equal(t, []string{"paracetamol"}, store.suggestions[0].Medicines)
	assert.Len(t, em.ofType(domain.NotifySuggestionAdded), 1)
}

func TestAttachSuggestion_TextRequired(t *testing.T) {
	l := newTestLedger(newMemStore(), &memEmitter{}, &memDirectory{})

	_, err := l.AttachSuggestion(context.Background(), doctor, 1, "", nil, "")
	assert.ErrorIs(t, err, constant.InvalidArgumentErr)
}

func TestCompleteToken(t *testing.T) {
	store := newMemStore()
	em := &memEmitter{}
	l := newTestLedger(store, em, &memDirectory{})
	ctx := context.Background()

	_, err := l.IssueToken(ctx, user)
	require.NoError(t, err)
	tokenID := store.tokens[0].ID

	// must be in consultation first
	_, err = l.CompleteToken(ctx, doctor, tokenID)
	assert.ErrorIs(t, err, constant.InvalidTransitionErr)

	_, err = l.CallToDoctor(ctx, doctor, tokenID, doctor.UserID)
	require.NoError(t, err)

	completed, err := l.CompleteToken(ctx, doctor, tokenID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Len(t, em.ofType(domain.NotifyConsultationComplete), 1)

	// completing twice is invalid
	_, err = l.CompleteToken(ctx, doctor, tokenID)
	assert.ErrorIs(t, err, constant.InvalidTransitionErr)
}

func TestResetQueue_CancelsActiveAndRestartsNumbering(t *testing.T) {
	store := newMemStore()
	em := &memEmitter{}
	l := newTestLedger(store, em, &memDirectory{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.IssueToken(ctx, domain.Actor{UserID: 400 + i, Role: domain.RoleUser})
		require.NoError(t, err)
	}
	_, err := l.CallNext(ctx, admin)
	require.NoError(t, err)

	count, err := l.ResetQueue(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, store.status.CurrentToken)
	assert.Equal(t, 0, store.status.LastToken)
	assert.Len(t, em.ofType(domain.NotifyQueueReset), 3)

	for _, tok := range store.tokens {
		assert.Equal(t, domain.StatusCancelled, tok.Status)
	}

	// numbering restarts at 1; the same user may return
	res, err := l.IssueToken(ctx, domain.Actor{UserID: 400, Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Number)

	// cancelled tokens stay cancelled
	cancelled := 0
	for _, tok := range store.tokens {
		if tok.Status == domain.StatusCancelled {
			cancelled++
		}
	}
	assert.Equal(t, 3, cancelled)
}

func TestResetQueue_AdminOnly(t *testing.T) {
	l := newTestLedger(newMemStore(), &memEmitter{}, &memDirectory{})

	_, err := l.ResetQueue(context.Background(), doctor)
	assert.ErrorIs(t, err, constant.UnauthorizedErr)
}

func TestGetStatus_Snapshot(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.IssueToken(ctx, domain.Actor{UserID: 500 + i, Role: domain.RoleUser})
		require.NoError(t, err)
	}
	_, err := l.CallNext(ctx, admin)
	require.NoError(t, err)

	snap, err := l.GetStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.CurrentToken)
	assert.Equal(t, 3, snap.LastToken)
	assert.Equal(t, 2, snap.WaitingCount)
	assert.True(t, snap.IsActive)
	require.Len(t, snap.NextTokens, 2)
	assert.Equal(t, 2, snap.NextTokens[0].Number)
	// next token is one position behind the counter
	assert.InDelta(t, 5.0, snap.EstimatedWait, 0.001)
	require.NotNil(t, snap.CurrentDetail)
	assert.Equal(t, 1, snap.CurrentDetail.Number)
	assert.Equal(t, "user-500", snap.CurrentDetail.UserName)
}

func TestPatients_NoNegativeWaitAfterOutOfOrderCall(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := l.IssueToken(ctx, domain.Actor{UserID: 700 + i, Role: domain.RoleUser})
		require.NoError(t, err)
	}

	// a doctor pulls #2 past #1, which moves the counter to 2 while #1
	// still waits
	var secondID int64
	for _, tok := range store.tokens {
		if tok.Number == 2 {
			secondID = tok.ID
		}
	}
	_, err := l.CallToDoctor(ctx, doctor, secondID, doctor.UserID)
	require.NoError(t, err)

	board, err := l.Patients(ctx, doctor)
	require.NoError(t, err)
	require.Len(t, board.Waiting, 1)
	assert.Equal(t, 1, board.Waiting[0].Number)
	assert.InDelta(t, 0.0, board.Waiting[0].EstimatedWait, 0.001)

	snap, err := l.GetStatus(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.EstimatedWait, 0.0)
}

func TestPatients_Board(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store, &memEmitter{}, &memDirectory{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.IssueToken(ctx, domain.Actor{UserID: 600 + i, Role: domain.RoleUser})
		require.NoError(t, err)
	}
	tokenID := store.tokens[0].ID
	_, err := l.CallToDoctor(ctx, doctor, tokenID, doctor.UserID)
	require.NoError(t, err)
	_, err = l.CompleteToken(ctx, doctor, tokenID)
	require.NoError(t, err)

	board, err := l.Patients(ctx, doctor)
	require.NoError(t, err)

	assert.Len(t, board.Waiting, 2)
	assert.Empty(t, board.WithDoctor)
	require.Len(t, board.Completed, 1)
	assert.Equal(t, 1, board.Completed[0].Number)

	_, err = l.Patients(ctx, user)
	assert.ErrorIs(t, err, constant.UnauthorizedErr)
}
