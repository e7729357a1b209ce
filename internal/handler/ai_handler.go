package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/campusbridge/portal-api/internal/service"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
	"github.com/campusbridge/portal-api/pkg/response"
)

// AIHandler exposes the AI study-assist endpoints.
type AIHandler struct {
	ai       *service.AIService
	validate *validator.Validate
}

// NewAIHandler constructs AIHandler.
func NewAIHandler(ai *service.AIService, validate *validator.Validate) *AIHandler {
	return &AIHandler{ai: ai, validate: validate}
}

type resourceRequest struct {
	CourseTitle string `json:"course_title" validate:"required"`
	Chapter     string `json:"chapter" validate:"required"`
	Difficulty  string `json:"difficulty"`
}

type quizRequest struct {
	CourseTitle   string `json:"course_title" validate:"required"`
	Chapter       string `json:"chapter" validate:"required"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=20"`
}

// Resources godoc
// @Summary Recommend study resources for a course chapter
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body resourceRequest true "Resource request"
// @Success 200 {object} response.Envelope
// @Router /students/ai/resources [post]
func (h *AIHandler) Resources(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "course_title and chapter are required"))
			return
		}
	}

	resources, err := h.ai.RecommendResources(c.Request.Context(), tokenFromContext(c), req.CourseTitle, req.Chapter, req.Difficulty)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources)
}

// Quiz godoc
// @Summary Generate a practice quiz for a course chapter
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body quizRequest true "Quiz request"
// @Success 200 {object} response.Envelope
// @Router /students/ai/quiz [post]
func (h *AIHandler) Quiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "course_title and chapter are required"))
			return
		}
	}

	quiz, err := h.ai.GeneratePracticeQuiz(c.Request.Context(), tokenFromContext(c), req.CourseTitle, req.Chapter, req.Difficulty, req.QuestionCount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz)
}
