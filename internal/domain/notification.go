package domain

import "time"

type NotificationType string

const (
	NotifyTokenGenerated       NotificationType = "token_generated"
	NotifyNewPatient           NotificationType = "new_patient"
	NotifyTokenCalled          NotificationType = "token_called"
	NotifySuggestionAdded      NotificationType = "suggestion_added"
	NotifyConsultationComplete NotificationType = "consultation_complete"
	NotifyQueueReset           NotificationType = "queue_reset"
)

// NotificationEvent is handed to the emitter after a ledger mutation
// commits. Delivery is best-effort and never blocks or fails the mutation.
type NotificationEvent struct {
	ID        string           `json:"id"`
	UserID    int              `json:"user_id"`
	TokenID   *int64           `json:"token_id,omitempty"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}

// Notification is the persisted inbox row the notifier command writes.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int              `json:"user_id"`
	TokenID   *int64           `json:"token_id,omitempty"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
