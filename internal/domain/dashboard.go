package domain

import "time"

// PatientBoard is the staff dashboard listing: everyone in line, everyone
// in a consultation, and today's recent completions.
type PatientBoard struct {
	Waiting    []WaitingPatient   `json:"waiting"`
	WithDoctor []InServicePatient `json:"with_doctor"`
	Completed  []ServedPatient    `json:"completed"`
}

type WaitingPatient struct {
	TokenID       int64     `json:"token_id"`
	Number        int       `json:"token_number"`
	UserID        int       `json:"user_id"`
	UserName      string    `json:"user_name"`
	CreatedAt     time.Time `json:"created_at"`
	EstimatedWait float64   `json:"waiting_time"`
}

type InServicePatient struct {
	TokenID  int64      `json:"token_id"`
	Number   int        `json:"token_number"`
	UserID   int        `json:"user_id"`
	UserName string     `json:"user_name"`
	DoctorID *int       `json:"doctor_id,omitempty"`
	CalledAt *time.Time `json:"called_at,omitempty"`
}

type ServedPatient struct {
	Number      int        `json:"token_number"`
	UserName    string     `json:"user_name"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
