package domain

import "time"

type HistoryAction string

const (
	ActionCreated        HistoryAction = "created"
	ActionCalled         HistoryAction = "called"
	ActionCalledToDoctor HistoryAction = "called_to_doctor"
	ActionCompleted      HistoryAction = "completed"
	ActionReset          HistoryAction = "reset"
)

// HistoryEntry is an append-only audit record. Rows are written inside the
// same transaction as the state change they describe and never updated.
type HistoryEntry struct {
	ID          int64         `json:"id"`
	TokenNumber int           `json:"token_number"`
	UserID      int           `json:"user_id"`
	Action      HistoryAction `json:"action"`
	CreatedAt   time.Time     `json:"created_at"`
}
