package domain

import "time"

type TokenStatus string

const (
	StatusWaiting    TokenStatus = "waiting"
	StatusCalled     TokenStatus = "called"
	StatusWithDoctor TokenStatus = "with_doctor"
	StatusCompleted  TokenStatus = "completed"
	StatusCancelled  TokenStatus = "cancelled"
)

// Token is one queue ticket. Number is unique within a numbering epoch and
// never changes after issue.
type Token struct {
	ID          int64       `json:"token_id"`
	Number      int         `json:"token_number"`
	UserID      int         `json:"user_id"`
	DoctorID    *int        `json:"doctor_id,omitempty"`
	Status      TokenStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CalledAt    *time.Time  `json:"called_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Active reports whether the token still occupies a place in the queue.
func (t Token) Active() bool {
	switch t.Status {
	case StatusWaiting, StatusCalled, StatusWithDoctor:
		return true
	}
	return false
}

// ValidTransition reports whether from → to is a legal lifecycle change.
//
//	waiting ────► called ──────┐
//	   │                       ▼
//	   ├───────► with_doctor ► completed
//	   │              │
//	   └──────────────┴──────► cancelled   (reset only)
//
// Terminal states are completed and cancelled. The Ledger methods enforce
// these rules themselves; this table backs them and the tests.
func ValidTransition(from, to TokenStatus) bool {
	switch from {
	case StatusWaiting:
		return to == StatusCalled || to == StatusWithDoctor || to == StatusCancelled
	case StatusCalled:
		return to == StatusCompleted || to == StatusCancelled
	case StatusWithDoctor:
		return to == StatusCompleted || to == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	}
	return false
}
