package domain

import "time"

// QueueStatus is the singleton counter record for the queue.
// CurrentToken is the highest number ever pulled out of waiting in this
// epoch, LastToken the highest number issued. Invariant:
// LastToken >= CurrentToken >= 0. Only ResetQueue sets either back to 0.
type QueueStatus struct {
	CurrentToken int       `json:"current_token"`
	LastToken    int       `json:"last_token"`
	IsActive     bool      `json:"is_active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NextToken is one upcoming waiting entry on the public status board.
type NextToken struct {
	Number    int       `json:"token_number"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentDetail describes the token at the serving point, if any.
type CurrentDetail struct {
	Number   int         `json:"token_number"`
	UserID   int         `json:"user_id"`
	UserName string      `json:"user_name"`
	Status   TokenStatus `json:"status"`
	DoctorID *int        `json:"doctor_id,omitempty"`
}

// Snapshot is a consistent read of the whole queue, served to the public
// display board.
type Snapshot struct {
	CurrentToken    int            `json:"current_token"`
	CurrentDetail   *CurrentDetail `json:"current_token_data,omitempty"`
	LastToken       int            `json:"last_token"`
	WaitingCount    int            `json:"waiting_count"`
	WithDoctorCount int            `json:"with_doctor_count"`
	EstimatedWait   float64        `json:"estimated_waiting_time"`
	NextTokens      []NextToken    `json:"next_tokens"`
	IsActive        bool           `json:"is_active"`
}

// IssueResult is what a caller gets back for a freshly issued token.
type IssueResult struct {
	Number        int     `json:"token"`
	EstimatedWait float64 `json:"waiting_time"`
	Position      int     `json:"position"`
}
