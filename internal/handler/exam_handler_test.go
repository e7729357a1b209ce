package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalmiddleware "github.com/campusbridge/portal-api/internal/middleware"
	"github.com/campusbridge/portal-api/internal/models"
	"github.com/campusbridge/portal-api/internal/service"
)

type examGatewayStub struct {
	startResult *models.StartAttemptResult
	startErr    error
	submitErr   error
	submitted   []int
	lastText    string
	lastFile    *models.AnswerFile
}

func (s *examGatewayStub) StartExamAttempt(ctx context.Context, token string, assessmentID int) (*models.StartAttemptResult, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	return s.startResult, nil
}

func (s *examGatewayStub) SubmitExamAttempt(ctx context.Context, token string, attemptID int, answerText string, file *models.AnswerFile) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, attemptID)
	s.lastText = answerText
	s.lastFile = file
	return nil
}

func (s *examGatewayStub) ListAssessments(ctx context.Context, token string) ([]models.AssessmentSummary, error) {
	return []models.AssessmentSummary{{ID: 42, Title: "Midterm", CourseCode: "CS101"}}, nil
}

func newExamServiceForHandlerTest(gateway *examGatewayStub) *service.ExamService {
	return service.NewExamService(gateway, nil, zap.NewNop(), service.ExamServiceConfig{
		MaxFileSizeBytes:  1024,
		AllowedExtensions: []string{"pdf", "txt"},
		TickInterval:      time.Hour,
	})
}

// examRouterAs mounts the exam routes behind middleware impersonating the
// given student, so several identities can share one service instance.
func examRouterAs(svc *service.ExamService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: userID, Role: models.RoleStudent})
		c.Set(internalmiddleware.ContextTokenKey, userID+"-token")
		c.Next()
	})
	h := NewExamHandler(svc)

	router.GET("/exams", h.Assessments)
	router.POST("/exams/:id/start", h.Start)
	router.GET("/exam-attempts/:id", h.Attempt)
	router.PUT("/exam-attempts/:id/answer", h.Answer)
	router.POST("/exam-attempts/:id/file", h.Upload)
	router.POST("/exam-attempts/:id/submit", h.Submit)
	router.POST("/exam-attempts/:id/cancel", h.Cancel)
	return router
}

func buildExamRouter(gateway *examGatewayStub) *gin.Engine {
	return examRouterAs(newExamServiceForHandlerTest(gateway), "student-1")
}

func startAttempt(t *testing.T, router *gin.Engine, assessmentID string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/exams/"+assessmentID+"/start", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestExamHandlerAssessments(t *testing.T) {
	router := buildExamRouter(&examGatewayStub{})

	req, _ := http.NewRequest(http.MethodGet, "/exams", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Midterm")
}

func TestExamHandlerStart(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{
		AttemptID:            77,
		TimeRemainingSeconds: 1800,
		Exam:                 json.RawMessage(`{"title":"Midterm"}`),
		IsResumed:            true,
	}}
	router := buildExamRouter(gateway)

	req, _ := http.NewRequest(http.MethodPost, "/exams/42/start", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data models.ExamAttempt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 77, envelope.Data.AttemptID)
	assert.Equal(t, 1800, envelope.Data.RemainingSeconds)
	assert.True(t, envelope.Data.Resumed)
}

func TestExamHandlerAnswerAndSubmit(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{AttemptID: 77, TimeRemainingSeconds: 600}}
	router := buildExamRouter(gateway)
	startAttempt(t, router, "42")

	req, _ := http.NewRequest(http.MethodPut, "/exam-attempts/77/answer", bytes.NewBufferString(`{"text": "my answer"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest(http.MethodPost, "/exam-attempts/77/submit", bytes.NewBufferString(`{"confirmed": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp = performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []int{77}, gateway.submitted)
	assert.Equal(t, "my answer", gateway.lastText)
}

func TestExamHandlerSubmitUnconfirmed(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{AttemptID: 77, TimeRemainingSeconds: 600}}
	router := buildExamRouter(gateway)
	startAttempt(t, router, "42")

	req, _ := http.NewRequest(http.MethodPost, "/exam-attempts/77/submit", bytes.NewBufferString(`{"confirmed": false}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, gateway.submitted)
}

func TestExamHandlerUploadRejectsDisallowedType(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{AttemptID: 77, TimeRemainingSeconds: 600}}
	router := buildExamRouter(gateway)
	startAttempt(t, router, "42")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("answer_file", "payload.exe")
	require.NoError(t, err)
	_, _ = part.Write([]byte("MZ"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/exam-attempts/77/file", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "not allowed")
}

func TestExamHandlerUploadAcceptsPDF(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{AttemptID: 77, TimeRemainingSeconds: 600}}
	router := buildExamRouter(gateway)
	startAttempt(t, router, "42")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("answer_file", "answer.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("data"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/exam-attempts/77/file", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest(http.MethodGet, "/exam-attempts/77", nil)
	resp = performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"has_file":true`)
}

func TestExamHandlerCancel(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{AttemptID: 77, TimeRemainingSeconds: 600}}
	router := buildExamRouter(gateway)
	startAttempt(t, router, "42")

	req, _ := http.NewRequest(http.MethodPost, "/exam-attempts/77/cancel", bytes.NewBufferString(`{"confirmed": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, gateway.submitted)

	req, _ = http.NewRequest(http.MethodGet, "/exam-attempts/77", nil)
	resp = performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExamHandlerForeignAttemptIsInvisible(t *testing.T) {
	gateway := &examGatewayStub{startResult: &models.StartAttemptResult{AttemptID: 101, TimeRemainingSeconds: 600}}
	svc := newExamServiceForHandlerTest(gateway)
	owner := examRouterAs(svc, "student-1")
	intruder := examRouterAs(svc, "student-2")

	startAttempt(t, owner, "42")
	req, _ := http.NewRequest(http.MethodPut, "/exam-attempts/101/answer", bytes.NewBufferString(`{"text": "private draft"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(owner, req)
	require.Equal(t, http.StatusOK, resp.Code)

	// Another student cannot read the attempt or its draft.
	req, _ = http.NewRequest(http.MethodGet, "/exam-attempts/101", nil)
	resp = performRequest(intruder, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.NotContains(t, resp.Body.String(), "private draft")

	// Nor overwrite, submit or cancel it.
	req, _ = http.NewRequest(http.MethodPut, "/exam-attempts/101/answer", bytes.NewBufferString(`{"text": "tampered"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = performRequest(intruder, req)
	require.Equal(t, http.StatusNotFound, resp.Code)

	req, _ = http.NewRequest(http.MethodPost, "/exam-attempts/101/submit", bytes.NewBufferString(`{"confirmed": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp = performRequest(intruder, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, gateway.submitted)

	req, _ = http.NewRequest(http.MethodPost, "/exam-attempts/101/cancel", bytes.NewBufferString(`{"confirmed": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp = performRequest(intruder, req)
	require.Equal(t, http.StatusNotFound, resp.Code)

	// The owner still holds the untouched draft.
	req, _ = http.NewRequest(http.MethodGet, "/exam-attempts/101", nil)
	resp = performRequest(owner, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "private draft")
}

func TestExamHandlerUnknownAttempt(t *testing.T) {
	router := buildExamRouter(&examGatewayStub{})

	req, _ := http.NewRequest(http.MethodGet, "/exam-attempts/999", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}
