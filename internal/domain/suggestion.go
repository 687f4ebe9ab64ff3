package domain

import "time"

// Suggestion is an advisory record a doctor attaches to a token while the
// patient is with them. Attaching one does not move the token's state.
type Suggestion struct {
	ID          int64     `json:"id"`
	TokenID     int64     `json:"token_id"`
	TokenNumber int       `json:"token_number"`
	DoctorID    int       `json:"doctor_id"`
	Text        string    `json:"suggestion_text"`
	Medicines   []string  `json:"medicines"`
	Notes       string    `json:"notes,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
