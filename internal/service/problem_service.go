package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/dto"
	"github.com/htnguyen/mathtutor/internal/model"
	"github.com/htnguyen/mathtutor/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProblemService creates new problem sessions and reads existing ones back.
type ProblemService interface {
	GenerateProblem(ctx context.Context) (*dto.SessionResponse, error)
	GetSession(sessionID uuid.UUID) (*dto.SessionDetailResponse, error)
}

type problemService struct {
	sessionRepo repository.SessionRepository
	llm         GeminiLLMService
}

func NewProblemService(sessionRepo repository.SessionRepository, llm GeminiLLMService) ProblemService {
	return &problemService{sessionRepo: sessionRepo, llm: llm}
}

// GenerateProblem asks the model gateway for one problem/answer pair and
// persists it as a new session. The insert happens only after the payload
// parsed cleanly, so a malformed gateway response leaves nothing behind.
func (s *problemService) GenerateProblem(ctx context.Context) (*dto.SessionResponse, error) {
	problem, err := s.llm.GenerateProblem(ctx)
	if err != nil {
		log.Error().Err(err).Msg("GenerateProblem: model gateway call failed")
		return nil, err
	}

	session := model.ProblemSession{
		ProblemText: problem.ProblemText,
		FinalAnswer: problem.FinalAnswer,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Msg("GenerateProblem: failed to insert problem session")
		return nil, fmt.Errorf("%w: creating session: %v", ErrPersistence, err)
	}

	log.Info().Str("sessionID", session.ID.String()).Float64("finalAnswer", session.FinalAnswer).Msg("Generated new problem session")

	var resp dto.SessionResponse
	if err := copier.Copy(&resp, &session); err != nil {
		return nil, fmt.Errorf("%w: preparing session response: %v", ErrPersistence, err)
	}
	return &resp, nil
}

// GetSession returns a session together with its submission history, so the
// presentation layer can restore state without replaying calls.
func (s *problemService) GetSession(sessionID uuid.UUID) (*dto.SessionDetailResponse, error) {
	session, err := s.sessionRepo.FindByIDWithSubmissions(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("GetSession: repository error")
		return nil, fmt.Errorf("%w: fetching session: %v", ErrPersistence, err)
	}

	resp := dto.SessionDetailResponse{
		ID:          session.ID,
		ProblemText: session.ProblemText,
		FinalAnswer: session.FinalAnswer,
		CreatedAt:   session.CreatedAt,
		Submissions: make([]dto.SubmissionResponse, 0, len(session.Submissions)),
	}
	for _, sub := range session.Submissions {
		resp.Submissions = append(resp.Submissions, dto.SubmissionResponse{
			ID:            sub.ID,
			SessionID:     sub.SessionID,
			UserAnswer:    sub.UserAnswer,
			IsCorrect:     sub.IsCorrect,
			Feedback:      sub.Feedback,
			CreatedAt:     sub.CreatedAt,
			CorrectAnswer: session.FinalAnswer,
		})
	}
	return &resp, nil
}
