package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/model"
)

func TestGenerateProblem_Success(t *testing.T) {
	llm := &mockLLMService{
		generateProblemFunc: func(ctx context.Context) (*GeneratedProblem, error) {
			return &GeneratedProblem{
				ProblemText: "Sam has 12 apples and gives away 5. How many remain?",
				FinalAnswer: 7,
			}, nil
		},
	}
	sessionRepo := &mockSessionRepository{
		createFunc: func(session *model.ProblemSession) error {
			if session.ProblemText == "" {
				t.Error("expected non-empty problem_text on insert")
			}
			if session.FinalAnswer != 7 {
				t.Errorf("expected final_answer=7 on insert, got %v", session.FinalAnswer)
			}
			session.ID = uuid.New()
			return nil
		},
	}

	svc := NewProblemService(sessionRepo, llm)
	resp, err := svc.GenerateProblem(context.Background())
	if err != nil {
		t.Fatalf("GenerateProblem failed: %v", err)
	}

	if resp.ProblemText != "Sam has 12 apples and gives away 5. How many remain?" {
		t.Errorf("unexpected problem_text: %q", resp.ProblemText)
	}
	if resp.FinalAnswer != 7 {
		t.Errorf("expected final_answer=7, got %v", resp.FinalAnswer)
	}
	if resp.ID == uuid.Nil {
		t.Error("expected a store-generated session id")
	}
	if sessionRepo.createCalls != 1 {
		t.Errorf("expected exactly one session insert, got %d", sessionRepo.createCalls)
	}
}

func TestGenerateProblem_UpstreamFailureSkipsInsert(t *testing.T) {
	llm := &mockLLMService{
		generateProblemFunc: func(ctx context.Context) (*GeneratedProblem, error) {
			return nil, fmt.Errorf("%w: response is missing final_answer", ErrUpstream)
		},
	}
	sessionRepo := &mockSessionRepository{}

	svc := NewProblemService(sessionRepo, llm)
	_, err := svc.GenerateProblem(context.Background())

	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if sessionRepo.createCalls != 0 {
		t.Errorf("expected no session insert on malformed payload, got %d", sessionRepo.createCalls)
	}
}

func TestGenerateProblem_PersistFailure(t *testing.T) {
	llm := &mockLLMService{
		generateProblemFunc: func(ctx context.Context) (*GeneratedProblem, error) {
			return &GeneratedProblem{ProblemText: "p", FinalAnswer: 1}, nil
		},
	}
	sessionRepo := &mockSessionRepository{
		createFunc: func(session *model.ProblemSession) error {
			return errors.New("connection refused")
		},
	}

	svc := NewProblemService(sessionRepo, llm)
	_, err := svc.GenerateProblem(context.Background())

	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestGetSession(t *testing.T) {
	sessionID := uuid.New()
	fb := "well done"
	sessionRepo := &mockSessionRepository{
		findByIDWithSubmissionsFunc: func(id uuid.UUID) (*model.ProblemSession, error) {
			return &model.ProblemSession{
				ID:          sessionID,
				ProblemText: "p",
				FinalAnswer: 4,
				Submissions: []model.Submission{
					{ID: uuid.New(), SessionID: sessionID, UserAnswer: 4, IsCorrect: true, Feedback: &fb},
				},
			}, nil
		},
	}

	svc := NewProblemService(sessionRepo, &mockLLMService{})
	resp, err := svc.GetSession(sessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if resp.ID != sessionID {
		t.Errorf("expected session id %s, got %s", sessionID, resp.ID)
	}
	if len(resp.Submissions) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(resp.Submissions))
	}
	if resp.Submissions[0].CorrectAnswer != 4 {
		t.Errorf("expected correct_answer=4 on submission, got %v", resp.Submissions[0].CorrectAnswer)
	}
}
