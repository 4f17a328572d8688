package repository

import (
	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	FindBySessionID(sessionID uuid.UUID) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindBySessionID(sessionID uuid.UUID) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
