package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/dto"
	"github.com/htnguyen/mathtutor/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProblemService struct {
	generateProblemFunc func(ctx context.Context) (*dto.SessionResponse, error)
	getSessionFunc      func(sessionID uuid.UUID) (*dto.SessionDetailResponse, error)
}

func (m *mockProblemService) GenerateProblem(ctx context.Context) (*dto.SessionResponse, error) {
	if m.generateProblemFunc != nil {
		return m.generateProblemFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProblemService) GetSession(sessionID uuid.UUID) (*dto.SessionDetailResponse, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(sessionID)
	}
	return nil, errors.New("not implemented")
}

func newProblemRouter(svc service.ProblemService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewProblemController(svc)
	r.POST("/generate-problem", ctrl.GenerateProblem)
	r.GET("/api/v1/sessions/:session_id", ctrl.GetSession)
	return r
}

func TestGenerateProblemEndpoint_Success(t *testing.T) {
	sessionID := uuid.New()
	svc := &mockProblemService{
		generateProblemFunc: func(ctx context.Context) (*dto.SessionResponse, error) {
			return &dto.SessionResponse{
				ID:          sessionID,
				ProblemText: "Sam has 12 apples and gives away 5. How many remain?",
				FinalAnswer: 7,
				CreatedAt:   time.Now(),
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-problem", nil)
	newProblemRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, sessionID, body.ID)
	assert.Equal(t, "Sam has 12 apples and gives away 5. How many remain?", body.ProblemText)
	assert.Equal(t, 7.0, body.FinalAnswer)
}

func TestGenerateProblemEndpoint_FailureIsFlat(t *testing.T) {
	svc := &mockProblemService{
		generateProblemFunc: func(ctx context.Context) (*dto.SessionResponse, error) {
			return nil, fmt.Errorf("%w: gateway returned status 503", service.ErrUpstream)
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-problem", nil)
	newProblemRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The error kind is never surfaced to the caller.
	assert.JSONEq(t, `{"error":"Failed to generate problem"}`, w.Body.String())
}

func TestGetSessionEndpoint(t *testing.T) {
	sessionID := uuid.New()
	svc := &mockProblemService{
		getSessionFunc: func(id uuid.UUID) (*dto.SessionDetailResponse, error) {
			if id != sessionID {
				return nil, fmt.Errorf("session %s: %w", id, service.ErrSessionNotFound)
			}
			return &dto.SessionDetailResponse{ID: sessionID, ProblemText: "p", FinalAnswer: 3, Submissions: []dto.SubmissionResponse{}}, nil
		},
	}
	router := newProblemRouter(svc)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID.String(), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body dto.SessionDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, sessionID, body.ID)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
