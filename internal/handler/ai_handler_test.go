package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalmiddleware "github.com/campusbridge/portal-api/internal/middleware"
	"github.com/campusbridge/portal-api/internal/service"
)

type completionGatewayStub struct {
	reply string
	err   error
}

func (s *completionGatewayStub) Complete(ctx context.Context, token, path, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func buildAIRouter(gateway *completionGatewayStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(internalmiddleware.ContextTokenKey, "test-token")
		c.Next()
	})

	svc := service.NewAIService(gateway, zap.NewNop(), service.AIServiceConfig{})
	h := NewAIHandler(svc, validator.New())
	router.POST("/ai/resources", h.Resources)
	router.POST("/ai/quiz", h.Quiz)
	return router
}

func TestAIHandlerResourcesFallbackOnGarbageReply(t *testing.T) {
	router := buildAIRouter(&completionGatewayStub{reply: "I cannot help with that."})

	req, _ := http.NewRequest(http.MethodPost, "/ai/resources", bytes.NewBufferString(`{"course_title": "CS101", "chapter": "Pointers"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "YouTube")
	assert.Contains(t, resp.Body.String(), "Khan Academy")
}

func TestAIHandlerResourcesRequiresChapter(t *testing.T) {
	router := buildAIRouter(&completionGatewayStub{reply: "[]"})

	req, _ := http.NewRequest(http.MethodPost, "/ai/resources", bytes.NewBufferString(`{"course_title": "CS101"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAIHandlerQuizMalformedReply(t *testing.T) {
	router := buildAIRouter(&completionGatewayStub{reply: "not json"})

	req, _ := http.NewRequest(http.MethodPost, "/ai/quiz", bytes.NewBufferString(`{"course_title": "CS101", "chapter": "Pointers"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "MALFORMED_AI_RESPONSE")
}

func TestAIHandlerQuizSuccess(t *testing.T) {
	reply := `{"title": "Quiz", "questions": [{"question": "Q?", "options": ["a","b","c","d"], "correct_answer": "a", "explanation": "", "points": 1}]}`
	router := buildAIRouter(&completionGatewayStub{reply: reply})

	req, _ := http.NewRequest(http.MethodPost, "/ai/quiz", bytes.NewBufferString(`{"course_title": "CS101", "chapter": "Pointers", "question_count": 1}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"correct_answer":"a"`)
}
