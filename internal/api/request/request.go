package request

// SuggestionRequest attaches a doctor's advisory to a token in
// consultation.
type SuggestionRequest struct {
	TokenID        int64    `json:"token_id" binding:"required"`
	SuggestionText string   `json:"suggestion_text" binding:"required"`
	Medicines      []string `json:"medicines"`
	Notes          string   `json:"notes"`
}

// CallToDoctorRequest assigns the doctor a waiting token is pulled to.
type CallToDoctorRequest struct {
	DoctorID int `json:"doctor_id" binding:"required"`
}

type PriorityRequest struct {
	Age            int     `json:"age" binding:"min=0,max=150"`
	Emergency      bool    `json:"emergency"`
	WaitingMinutes float64 `json:"waiting_time" binding:"min=0"`
	TokenType      string  `json:"token_type"`
}

type PredictWaitRequest struct {
	PatientsBefore    int     `json:"patients_before" binding:"min=0"`
	AvgServiceMinutes float64 `json:"avg_service_time" binding:"required,gt=0"`
	UseCurrentTime    bool    `json:"use_current_time"`
}

type PredictCompletionRequest struct {
	TokenTime         string  `json:"token_time" binding:"required"`
	Position          int     `json:"position" binding:"min=0"`
	AvgServiceMinutes float64 `json:"avg_service_time" binding:"required,gt=0"`
}

type OptimizeRequest struct {
	Tokens []OptimizeToken `json:"tokens" binding:"required"`
}

type OptimizeToken struct {
	TokenID        int64   `json:"token_id"`
	Age            int     `json:"age"`
	Emergency      bool    `json:"emergency"`
	WaitingMinutes float64 `json:"waiting_time"`
	TokenType      string  `json:"token_type"`
}
