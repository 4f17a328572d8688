package repository

import (
	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.ProblemSession) error
	FindByID(id uuid.UUID) (*model.ProblemSession, error)
	FindByIDWithSubmissions(id uuid.UUID) (*model.ProblemSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.ProblemSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*model.ProblemSession, error) {
	var session model.ProblemSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByIDWithSubmissions(id uuid.UUID) (*model.ProblemSession, error) {
	var session model.ProblemSession
	err := r.db.Preload("Submissions", func(db *gorm.DB) *gorm.DB {
		return db.Order("math_problem_submissions.created_at ASC")
	}).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}
