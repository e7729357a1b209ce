package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusbridge/portal-api/internal/models"
	"github.com/campusbridge/portal-api/internal/service"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
	"github.com/campusbridge/portal-api/pkg/response"
)

// ExamHandler exposes the timed exam attempt endpoints.
type ExamHandler struct {
	exams *service.ExamService
}

// NewExamHandler constructs ExamHandler.
func NewExamHandler(exams *service.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

// attemptRequest parses the attempt id and resolves the caller's claims.
// Every per-attempt endpoint acts on behalf of the authenticated student,
// so both are required before touching the session.
func (h *ExamHandler) attemptRequest(c *gin.Context) (int, *models.JWTClaims, bool) {
	attemptID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid attempt id"))
		return 0, nil, false
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return 0, nil, false
	}
	return attemptID, claims, true
}

// Assessments godoc
// @Summary List assessments available to the student
// @Tags Exams
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/exams [get]
func (h *ExamHandler) Assessments(c *gin.Context) {
	assessments, err := h.exams.Assessments(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments)
}

// Start godoc
// @Summary Start or resume a timed exam attempt
// @Tags Exams
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Router /students/exams/{id}/start [post]
func (h *ExamHandler) Start(c *gin.Context) {
	assessmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assessment id"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	attempt, err := h.exams.Start(c.Request.Context(), tokenFromContext(c), claims.UserID, assessmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attempt)
}

// Attempt godoc
// @Summary Get the current state of an exam attempt
// @Tags Exams
// @Produce json
// @Param id path int true "Attempt ID"
// @Success 200 {object} response.Envelope
// @Router /students/exam-attempts/{id} [get]
func (h *ExamHandler) Attempt(c *gin.Context) {
	attemptID, claims, ok := h.attemptRequest(c)
	if !ok {
		return
	}
	attempt, err := h.exams.Snapshot(claims.UserID, attemptID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attempt)
}

// Answer godoc
// @Summary Record the text answer for an attempt
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param payload body models.AnswerPayload true "Answer text"
// @Success 200 {object} response.Envelope
// @Router /students/exam-attempts/{id}/answer [put]
func (h *ExamHandler) Answer(c *gin.Context) {
	attemptID, claims, ok := h.attemptRequest(c)
	if !ok {
		return
	}
	var payload models.AnswerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.exams.RecordAnswer(claims.UserID, attemptID, payload.Text); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"attempt_id": attemptID})
}

// Upload godoc
// @Summary Attach an answer file to an attempt
// @Tags Exams
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Attempt ID"
// @Param answer_file formData file true "Answer file"
// @Success 200 {object} response.Envelope
// @Router /students/exam-attempts/{id}/file [post]
func (h *ExamHandler) Upload(c *gin.Context) {
	attemptID, claims, ok := h.attemptRequest(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("answer_file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "answer_file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read answer_file"))
		return
	}
	defer file.Close()

	if err := h.exams.AttachFile(claims.UserID, attemptID, fileHeader.Filename, fileHeader.Size, file); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"attempt_id": attemptID, "file": fileHeader.Filename})
}

// Submit godoc
// @Summary Submit an exam attempt
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param payload body models.SubmitPayload true "Submission confirmation"
// @Success 200 {object} response.Envelope
// @Router /students/exam-attempts/{id}/submit [post]
func (h *ExamHandler) Submit(c *gin.Context) {
	attemptID, claims, ok := h.attemptRequest(c)
	if !ok {
		return
	}
	var payload models.SubmitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.exams.Submit(c.Request.Context(), claims.UserID, attemptID, payload.Confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"attempt_id": attemptID, "submitted": true})
}

// Cancel godoc
// @Summary Cancel an in-progress exam attempt
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param payload body models.SubmitPayload true "Cancellation confirmation"
// @Success 200 {object} response.Envelope
// @Router /students/exam-attempts/{id}/cancel [post]
func (h *ExamHandler) Cancel(c *gin.Context) {
	attemptID, claims, ok := h.attemptRequest(c)
	if !ok {
		return
	}
	var payload models.SubmitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.exams.Cancel(claims.UserID, attemptID, payload.Confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"attempt_id": attemptID, "cancelled": true})
}
