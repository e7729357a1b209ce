package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

// StartExamAttempt asks the backend to start or resume an attempt. The
// backend alone decides fresh vs. resumed and owns the deadline.
func (c *Client) StartExamAttempt(ctx context.Context, token string, assessmentID int) (*models.StartAttemptResult, error) {
	var result models.StartAttemptResult
	path := fmt.Sprintf("/students/exams/%d/start/", assessmentID)
	if err := c.postJSON(ctx, token, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitExamAttempt posts the answer as a multipart payload: an answer_text
// field plus an optional answer_file part.
func (c *Client) SubmitExamAttempt(ctx context.Context, token string, attemptID int, answerText string, file *models.AnswerFile) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writer.WriteField("answer_text", answerText); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode answer text")
	}
	if file != nil {
		part, err := writer.CreateFormFile("answer_file", file.Name)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode answer file")
		}
		if _, err := part.Write(file.Content); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write answer file")
		}
	}
	if err := writer.Close(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalize multipart payload")
	}

	path := fmt.Sprintf("/students/exam-attempts/%d/submit/", attemptID)
	return c.do(ctx, token, http.MethodPost, path, buf, writer.FormDataContentType(), nil)
}

// ListAssessments fetches the student's exam lobby.
func (c *Client) ListAssessments(ctx context.Context, token string) ([]models.AssessmentSummary, error) {
	var assessments []models.AssessmentSummary
	if err := c.get(ctx, token, "/students/exams/", &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}
