package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/htnguyen/mathtutor/internal/dto"
	"github.com/htnguyen/mathtutor/internal/service"
	"github.com/rs/zerolog/log"
)

type SubmissionController struct {
	evaluationService service.EvaluationService
}

func NewSubmissionController(evaluationService service.EvaluationService) *SubmissionController {
	return &SubmissionController{evaluationService: evaluationService}
}

// SubmitAnswer godoc
// @Summary Submit an answer for a problem session
// @Description Evaluates the learner's answer against the stored session, generates feedback and persists the submission. Any failure, including a malformed body, yields the same flat error payload.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswerRequest true "Session ID and the learner's numeric answer"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to submit answer"
// @Router /submit-answer [post]
func (c *SubmissionController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind request body")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit answer"})
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionId", req.SessionID).Msg("SubmitAnswer: invalid session id")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit answer"})
		return
	}

	submission, err := c.evaluationService.Evaluate(ctx.Request.Context(), sessionID, *req.UserAnswer)
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("SubmitAnswer: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit answer"})
		return
	}
	ctx.JSON(http.StatusOK, submission)
}

// GetSessionSubmissions godoc
// @Summary List submissions recorded against a session
// @Tags Submissions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/sessions/{session_id}/submissions [get]
func (c *SubmissionController) GetSessionSubmissions(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid session ID format"})
		return
	}

	submissions, err := c.evaluationService.GetSessionSubmissions(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Session not found"})
			return
		}
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("GetSessionSubmissions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve submissions"})
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}
