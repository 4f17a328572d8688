package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/dto"
	"github.com/htnguyen/mathtutor/internal/model"
	"github.com/htnguyen/mathtutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// answerTolerance is the absolute margin for numeric correctness. It suits the
// small whole-number and simple-fraction answers of this problem domain but
// degrades for very large magnitudes; that is a known limitation and the value
// is kept as-is rather than switched to a relative tolerance.
const answerTolerance = 0.01

// EvaluationService ties a generated problem to a later submission: it loads
// the session, derives correctness, asks the model gateway for feedback and
// persists the result. From the caller's point of view the whole evaluation is
// all-or-nothing: if any step fails, no submission row is written.
type EvaluationService interface {
	Evaluate(ctx context.Context, sessionID uuid.UUID, userAnswer float64) (*dto.SubmissionResponse, error)
	GetSessionSubmissions(sessionID uuid.UUID) ([]dto.SubmissionResponse, error)
}

type evaluationService struct {
	sessionRepo    repository.SessionRepository
	submissionRepo repository.SubmissionRepository
	llm            GeminiLLMService
}

func NewEvaluationService(
	sessionRepo repository.SessionRepository,
	submissionRepo repository.SubmissionRepository,
	llm GeminiLLMService,
) EvaluationService {
	return &evaluationService{
		sessionRepo:    sessionRepo,
		submissionRepo: submissionRepo,
		llm:            llm,
	}
}

func answerIsCorrect(userAnswer, finalAnswer float64) bool {
	return math.Abs(userAnswer-finalAnswer) < answerTolerance
}

func (s *evaluationService) Evaluate(ctx context.Context, sessionID uuid.UUID, userAnswer float64) (*dto.SubmissionResponse, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("sessionID", sessionID.String()).Msg("Evaluate: session not found")
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("Evaluate: failed to fetch session")
		return nil, fmt.Errorf("%w: fetching session: %v", ErrPersistence, err)
	}

	isCorrect := answerIsCorrect(userAnswer, session.FinalAnswer)

	feedback, err := s.llm.GenerateFeedback(ctx, session.ProblemText, session.FinalAnswer, userAnswer, isCorrect)
	if err != nil {
		// Fail closed: without feedback nothing is persisted, so the caller
		// can simply re-issue the request.
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("Evaluate: feedback generation failed")
		return nil, err
	}

	submission := model.Submission{
		SessionID:  session.ID,
		UserAnswer: userAnswer,
		IsCorrect:  isCorrect,
		Feedback:   &feedback,
	}
	if err := s.submissionRepo.Create(&submission); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("Evaluate: failed to insert submission")
		return nil, fmt.Errorf("%w: creating submission: %v", ErrPersistence, err)
	}

	log.Info().
		Str("sessionID", sessionID.String()).
		Str("submissionID", submission.ID.String()).
		Bool("isCorrect", isCorrect).
		Msg("Answer evaluated")

	return &dto.SubmissionResponse{
		ID:            submission.ID,
		SessionID:     submission.SessionID,
		UserAnswer:    submission.UserAnswer,
		IsCorrect:     submission.IsCorrect,
		Feedback:      submission.Feedback,
		CreatedAt:     submission.CreatedAt,
		CorrectAnswer: session.FinalAnswer,
	}, nil
}

// GetSessionSubmissions lists every submission recorded against a session,
// oldest first. Resubmission is explicitly allowed, so this can grow.
func (s *evaluationService) GetSessionSubmissions(sessionID uuid.UUID) ([]dto.SubmissionResponse, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%w: fetching session: %v", ErrPersistence, err)
	}

	submissions, err := s.submissionRepo.FindBySessionID(sessionID)
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("GetSessionSubmissions: repository error")
		return nil, fmt.Errorf("%w: fetching submissions: %v", ErrPersistence, err)
	}

	resp := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		resp = append(resp, dto.SubmissionResponse{
			ID:            sub.ID,
			SessionID:     sub.SessionID,
			UserAnswer:    sub.UserAnswer,
			IsCorrect:     sub.IsCorrect,
			Feedback:      sub.Feedback,
			CreatedAt:     sub.CreatedAt,
			CorrectAnswer: session.FinalAnswer,
		})
	}
	return resp, nil
}
