package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProblemSession is one generated word problem together with its ground-truth
// answer. Rows are created once by problem generation and never mutated.
type ProblemSession struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ProblemText string       `json:"problem_text" gorm:"type:text;not null"`
	FinalAnswer float64      `json:"final_answer" gorm:"not null"`
	Submissions []Submission `json:"submissions,omitempty" gorm:"foreignKey:SessionID"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (ProblemSession) TableName() string { return "math_problem_sessions" }

func (s *ProblemSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
