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

type ProblemController struct {
	problemService service.ProblemService
}

func NewProblemController(problemService service.ProblemService) *ProblemController {
	return &ProblemController{problemService: problemService}
}

// GenerateProblem godoc
// @Summary Generate a new math word problem
// @Description Asks the model gateway for a Primary 5 word problem and stores it as a new session.
// @Tags Problems
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to generate problem"
// @Router /generate-problem [post]
func (c *ProblemController) GenerateProblem(ctx *gin.Context) {
	session, err := c.problemService.GenerateProblem(ctx.Request.Context())
	if err != nil {
		// Error kinds are logged but never surfaced; callers see one flat body.
		log.Error().Err(err).Msg("GenerateProblem: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to generate problem"})
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// GetSession godoc
// @Summary Get a problem session with its submissions
// @Tags Problems
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.SessionDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/sessions/{session_id} [get]
func (c *ProblemController) GetSession(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid session ID format"})
		return
	}

	session, err := c.problemService.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Session not found"})
			return
		}
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("GetSession: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve session"})
		return
	}
	ctx.JSON(http.StatusOK, session)
}
