package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission records one evaluated answer against a ProblemSession.
// IsCorrect is always derived server-side, never taken from the client.
// A session may accumulate any number of submissions; retries are allowed.
type Submission struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	UserAnswer float64   `json:"user_answer" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null"`
	Feedback   *string   `json:"feedback" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Submission) TableName() string { return "math_problem_submissions" }

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
