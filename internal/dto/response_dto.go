package dto

import (
	"time"

	"github.com/google/uuid"
)

// SessionResponse is returned by POST /generate-problem. FinalAnswer is part
// of the payload on purpose: the presentation layer keeps it hidden and the
// server re-derives correctness on submission anyway.
type SessionResponse struct {
	ID          uuid.UUID `json:"id"`
	ProblemText string    `json:"problem_text"`
	FinalAnswer float64   `json:"final_answer"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmissionResponse is returned by POST /submit-answer. CorrectAnswer carries
// the session's ground truth so the caller never needs a second lookup.
type SubmissionResponse struct {
	ID            uuid.UUID `json:"id"`
	SessionID     uuid.UUID `json:"session_id"`
	UserAnswer    float64   `json:"user_answer"`
	IsCorrect     bool      `json:"is_correct"`
	Feedback      *string   `json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`
	CorrectAnswer float64   `json:"correct_answer"`
}

// SessionDetailResponse is a session with its submission history.
type SessionDetailResponse struct {
	ID          uuid.UUID            `json:"id"`
	ProblemText string               `json:"problem_text"`
	FinalAnswer float64              `json:"final_answer"`
	CreatedAt   time.Time            `json:"created_at"`
	Submissions []SubmissionResponse `json:"submissions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
