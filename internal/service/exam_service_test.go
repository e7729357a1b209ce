package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

type submitRecord struct {
	attemptID  int
	answerText string
	file       *models.AnswerFile
}

type mockExamGateway struct {
	mu sync.Mutex

	startResult *models.StartAttemptResult
	startErr    error
	submitErr   error
	submissions []submitRecord
	assessments []models.AssessmentSummary
}

func (m *mockExamGateway) StartExamAttempt(ctx context.Context, token string, assessmentID int) (*models.StartAttemptResult, error) {
	if m.startErr != nil {
		return nil, m.startErr
	}
	return m.startResult, nil
}

func (m *mockExamGateway) SubmitExamAttempt(ctx context.Context, token string, attemptID int, answerText string, file *models.AnswerFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitErr != nil {
		return m.submitErr
	}
	m.submissions = append(m.submissions, submitRecord{attemptID: attemptID, answerText: answerText, file: file})
	return nil
}

func (m *mockExamGateway) ListAssessments(ctx context.Context, token string) ([]models.AssessmentSummary, error) {
	return m.assessments, nil
}

func (m *mockExamGateway) submitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submissions)
}

func newExamServiceForTest(gateway *mockExamGateway, tick time.Duration) *ExamService {
	return NewExamService(gateway, nil, zap.NewNop(), ExamServiceConfig{
		MaxFileSizeBytes:  1024,
		AllowedExtensions: []string{"pdf", "txt"},
		TickInterval:      tick,
	})
}

func startResult(attemptID, remaining int, resumed bool) *models.StartAttemptResult {
	return &models.StartAttemptResult{
		AttemptID:            attemptID,
		TimeRemainingSeconds: remaining,
		Exam:                 json.RawMessage(`{"title":"Midterm"}`),
		IsResumed:            resumed,
	}
}

func TestExamServiceStartRegistersSession(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(10, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	attempt, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	assert.Equal(t, 10, attempt.AttemptID)
	assert.Equal(t, 42, attempt.AssessmentID)
	assert.Equal(t, 600, attempt.RemainingSeconds)
	assert.False(t, attempt.Resumed)

	snap, err := svc.Snapshot("student-1", 10)
	require.NoError(t, err)
	assert.Equal(t, "student-1", snap.StudentID)
}

func TestExamServiceStartResumePassthrough(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(11, 137, true)}
	svc := newExamServiceForTest(gateway, time.Hour)

	attempt, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	assert.True(t, attempt.Resumed)
	assert.Equal(t, 137, attempt.RemainingSeconds)
}

func TestExamServiceStartFailureRegistersNothing(t *testing.T) {
	gateway := &mockExamGateway{startErr: appErrors.Clone(appErrors.ErrUpstream, "backend is unreachable")}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.Error(t, err)

	_, err = svc.Snapshot("student-1", 10)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestExamServiceCountdownDecrements(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(12, 1000, false)}
	svc := newExamServiceForTest(gateway, 5*time.Millisecond)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		remaining, err := svc.Remaining("student-1", 12)
		return err == nil && remaining < 1000
	}, time.Second, 2*time.Millisecond)

	remaining, err := svc.Remaining("student-1", 12)
	require.NoError(t, err)
	assert.Greater(t, remaining, 0)
}

func TestExamServiceAutoSubmitAtZeroExactlyOnce(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(13, 3, false)}
	svc := newExamServiceForTest(gateway, 5*time.Millisecond)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer("student-1", 13, "draft answer"))

	require.Eventually(t, func() bool {
		return gateway.submitCount() == 1
	}, time.Second, 5*time.Millisecond)

	// The timer is stopped and the session removed; no second submission.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, gateway.submitCount())
	assert.Equal(t, "draft answer", gateway.submissions[0].answerText)

	_, err = svc.Snapshot("student-1", 13)
	require.Error(t, err)
}

func TestExamServiceSubmitRequiresConfirmation(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(14, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer("student-1", 14, "answer"))

	err = svc.Submit(context.Background(), "student-1", 14, false)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, gateway.submitCount())
}

func TestExamServiceSubmitEmptyAttemptRejectedLocally(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(15, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer("student-1", 15, "   "))

	err = svc.Submit(context.Background(), "student-1", 15, true)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, gateway.submitCount())

	// Session survives the refused submit.
	_, err = svc.Snapshot("student-1", 15)
	require.NoError(t, err)
}

func TestExamServiceSubmitFailureKeepsDraft(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(16, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer("student-1", 16, "my answer"))

	gateway.submitErr = appErrors.Clone(appErrors.ErrUpstream, "backend is unreachable")
	err = svc.Submit(context.Background(), "student-1", 16, true)
	require.Error(t, err)

	snap, err := svc.Snapshot("student-1", 16)
	require.NoError(t, err)
	assert.Equal(t, "my answer", snap.AnswerText)

	gateway.submitErr = nil
	require.NoError(t, svc.Submit(context.Background(), "student-1", 16, true))
	assert.Equal(t, 1, gateway.submitCount())
}

func TestExamServiceAttachFileRejectsDisallowedType(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(17, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)

	err = svc.AttachFile("student-1", 17, "malware.exe", 10, strings.NewReader("MZ"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Contains(t, err.Error(), "not allowed")

	snap, err := svc.Snapshot("student-1", 17)
	require.NoError(t, err)
	assert.False(t, snap.HasFile)

	// A permitted file still attaches afterwards.
	require.NoError(t, svc.AttachFile("student-1", 17, "answer.pdf", 4, strings.NewReader("data")))
	snap, err = svc.Snapshot("student-1", 17)
	require.NoError(t, err)
	assert.True(t, snap.HasFile)
	assert.Equal(t, "answer.pdf", snap.FileName)
}

func TestExamServiceAttachFileRejectsOversize(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(18, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)

	err = svc.AttachFile("student-1", 18, "big.pdf", 2048, strings.NewReader(strings.Repeat("a", 2048)))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	snap, err := svc.Snapshot("student-1", 18)
	require.NoError(t, err)
	assert.False(t, snap.HasFile)
}

func TestExamServiceCancelClearsLocalStateOnly(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(19, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)

	err = svc.Cancel("student-1", 19, false)
	require.Error(t, err)

	require.NoError(t, svc.Cancel("student-1", 19, true))
	assert.Zero(t, gateway.submitCount())

	_, err = svc.Snapshot("student-1", 19)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestExamServiceStartReplacesExistingSession(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(20, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)

	gateway.startResult = startResult(21, 590, true)
	attempt, err := svc.Start(context.Background(), "tok", "student-1", 42)
	require.NoError(t, err)
	assert.Equal(t, 21, attempt.AttemptID)

	_, err = svc.Snapshot("student-1", 20)
	require.Error(t, err)
	_, err = svc.Snapshot("student-1", 21)
	require.NoError(t, err)
}

func TestExamServiceAttemptHiddenFromOtherStudents(t *testing.T) {
	gateway := &mockExamGateway{startResult: startResult(30, 600, false)}
	svc := newExamServiceForTest(gateway, time.Hour)

	_, err := svc.Start(context.Background(), "tok-a", "student-1", 42)
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer("student-1", 30, "private draft"))

	_, err = svc.Snapshot("student-2", 30)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Remaining("student-2", 30)
	require.Error(t, err)

	require.Error(t, svc.RecordAnswer("student-2", 30, "tampered"))
	require.Error(t, svc.AttachFile("student-2", 30, "answer.pdf", 4, strings.NewReader("data")))
	require.Error(t, svc.Submit(context.Background(), "student-2", 30, true))
	require.Error(t, svc.Cancel("student-2", 30, true))
	assert.Zero(t, gateway.submitCount())

	// The owner's session and draft are untouched.
	snap, err := svc.Snapshot("student-1", 30)
	require.NoError(t, err)
	assert.Equal(t, "private draft", snap.AnswerText)
	assert.False(t, snap.HasFile)
}

func TestExamServiceAssessmentsNormalizesNil(t *testing.T) {
	gateway := &mockExamGateway{}
	svc := newExamServiceForTest(gateway, time.Hour)

	assessments, err := svc.Assessments(context.Background(), "tok")
	require.NoError(t, err)
	assert.NotNil(t, assessments)
	assert.Empty(t, assessments)
}
