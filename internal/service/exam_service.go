package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

type examGateway interface {
	StartExamAttempt(ctx context.Context, token string, assessmentID int) (*models.StartAttemptResult, error)
	SubmitExamAttempt(ctx context.Context, token string, attemptID int, answerText string, file *models.AnswerFile) error
	ListAssessments(ctx context.Context, token string) ([]models.AssessmentSummary, error)
}

// ExamServiceConfig tunes the exam session controller.
type ExamServiceConfig struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
	TickInterval      time.Duration
}

// examSession is one student's in-progress attempt. The countdown mirrors
// the authoritative server deadline for display and auto-submit only; the
// backend re-validates every submission against its own clock.
type examSession struct {
	mu sync.Mutex

	attemptID    int
	assessmentID int
	studentID    string
	token        string
	exam         json.RawMessage
	resumed      bool
	startedAt    time.Time

	remaining  int
	answerText string
	answerFile *models.AnswerFile

	finished    bool
	timerDone   chan struct{}
	timerClosed bool
}

func (sess *examSession) stopTimer() {
	if !sess.timerClosed {
		sess.timerClosed = true
		close(sess.timerDone)
	}
}

// ExamService manages timed exam attempts end-to-end: start or resume, the
// one-second countdown, answer capture and submit-or-auto-submit.
type ExamService struct {
	gateway examGateway
	cache   *CacheService
	logger  *zap.Logger
	cfg     ExamServiceConfig

	mu        sync.Mutex
	sessions  map[int]*examSession
	byStudent map[string]int
}

// NewExamService constructs an ExamService.
func NewExamService(gateway examGateway, cache *CacheService, logger *zap.Logger, cfg ExamServiceConfig) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = 25 * 1024 * 1024
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = []string{"pdf", "doc", "docx", "txt"}
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &ExamService{
		gateway:   gateway,
		cache:     cache,
		logger:    logger,
		cfg:       cfg,
		sessions:  make(map[int]*examSession),
		byStudent: make(map[string]int),
	}
}

// Start asks the backend to start or resume an attempt and registers a local
// session mirroring the returned payload verbatim. A start failure is fatal
// to the attempt: no session is registered and the caller may simply start
// again, which may land on a resume.
func (s *ExamService) Start(ctx context.Context, token, studentID string, assessmentID int) (*models.ExamAttempt, error) {
	result, err := s.gateway.StartExamAttempt(ctx, token, assessmentID)
	if err != nil {
		return nil, err
	}

	remaining := result.TimeRemainingSeconds
	if remaining < 0 {
		remaining = 0
	}

	sess := &examSession{
		attemptID:    result.AttemptID,
		assessmentID: assessmentID,
		studentID:    studentID,
		token:        token,
		exam:         result.Exam,
		resumed:      result.IsResumed,
		startedAt:    time.Now().UTC(),
		remaining:    remaining,
		timerDone:    make(chan struct{}),
	}

	s.mu.Lock()
	if prevID, ok := s.byStudent[sessionKey(studentID, assessmentID)]; ok {
		if prev, exists := s.sessions[prevID]; exists {
			prev.mu.Lock()
			prev.stopTimer()
			prev.mu.Unlock()
			delete(s.sessions, prevID)
		}
	}
	s.sessions[sess.attemptID] = sess
	s.byStudent[sessionKey(studentID, assessmentID)] = sess.attemptID
	s.mu.Unlock()

	go s.run(sess)

	s.logger.Info("exam attempt started",
		zap.Int("attempt_id", sess.attemptID),
		zap.Int("assessment_id", assessmentID),
		zap.Bool("resumed", sess.resumed),
		zap.Int("remaining_seconds", remaining))

	return s.snapshot(sess), nil
}

// run drives the countdown. When the local clock reaches zero the attempt is
// submitted automatically, exactly once, without confirmation.
func (s *ExamService) run(sess *examSession) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.timerDone:
			return
		case <-ticker.C:
			sess.mu.Lock()
			if sess.finished || sess.timerClosed {
				sess.mu.Unlock()
				return
			}
			if sess.remaining > 0 {
				sess.remaining--
			}
			expired := sess.remaining == 0
			if expired {
				sess.stopTimer()
			}
			sess.mu.Unlock()

			if expired {
				s.autoSubmit(sess)
				return
			}
		}
	}
}

func (s *ExamService) autoSubmit(sess *examSession) {
	err := s.submit(context.Background(), sess, true)
	if err != nil {
		// Session state stays intact so the student can retry manually;
		// the server-side deadline remains authoritative either way.
		s.logger.Warn("auto-submit failed",
			zap.Int("attempt_id", sess.attemptID),
			zap.Error(err))
		return
	}
	s.logger.Info("attempt auto-submitted on timeout", zap.Int("attempt_id", sess.attemptID))
}

// RecordAnswer updates the drafted answer text. Purely local state.
func (s *ExamService) RecordAnswer(callerID string, attemptID int, text string) error {
	sess, err := s.session(callerID, attemptID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.finished {
		return appErrors.Clone(appErrors.ErrConflict, "attempt already submitted")
	}
	sess.answerText = text
	return nil
}

// AttachFile validates and stores an answer document. A disallowed extension
// or an oversized file is rejected before anything is stored, leaving the
// session's file slot untouched.
func (s *ExamService) AttachFile(callerID string, attemptID int, name string, size int64, r io.Reader) error {
	sess, err := s.session(callerID, attemptID)
	if err != nil {
		return err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if !s.extensionAllowed(ext) {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file type %q is not allowed; accepted types: %s", ext, strings.Join(s.cfg.AllowedExtensions, ", ")))
	}
	if size > s.cfg.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the %d MB limit", s.cfg.MaxFileSizeBytes/(1024*1024)))
	}

	content, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxFileSizeBytes+1))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read answer file")
	}
	if int64(len(content)) > s.cfg.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the %d MB limit", s.cfg.MaxFileSizeBytes/(1024*1024)))
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.finished {
		return appErrors.Clone(appErrors.ErrConflict, "attempt already submitted")
	}
	sess.answerFile = &models.AnswerFile{Name: name, Size: int64(len(content)), Content: content}
	return nil
}

// Submit sends the drafted answer to the backend. Manual submission is a
// destructive action and requires explicit confirmation; the timeout path
// bypasses it. A failed submit preserves the session so drafted answers are
// not lost.
func (s *ExamService) Submit(ctx context.Context, callerID string, attemptID int, confirmed bool) error {
	sess, err := s.session(callerID, attemptID)
	if err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrValidation, "submission must be confirmed")
	}
	return s.submit(ctx, sess, false)
}

func (s *ExamService) submit(ctx context.Context, sess *examSession, auto bool) error {
	sess.mu.Lock()
	if sess.finished {
		sess.mu.Unlock()
		return appErrors.Clone(appErrors.ErrConflict, "attempt already submitted")
	}
	text := strings.TrimSpace(sess.answerText)
	file := sess.answerFile
	if text == "" && file == nil {
		sess.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "provide an answer or attach a file before submitting")
	}
	token := sess.token
	attemptID := sess.attemptID
	sess.mu.Unlock()

	if err := s.gateway.SubmitExamAttempt(ctx, token, attemptID, text, file); err != nil {
		return err
	}

	sess.mu.Lock()
	sess.finished = true
	sess.stopTimer()
	sess.mu.Unlock()

	s.remove(sess)
	s.invalidateDashboard(ctx, token)

	s.logger.Info("exam attempt submitted",
		zap.Int("attempt_id", attemptID),
		zap.Bool("auto", auto))
	return nil
}

// Cancel is save-and-exit: it clears only local session state after explicit
// confirmation. The server-side attempt persists for a future resume.
func (s *ExamService) Cancel(callerID string, attemptID int, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrValidation, "cancellation must be confirmed")
	}
	sess, err := s.session(callerID, attemptID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.stopTimer()
	sess.mu.Unlock()
	s.remove(sess)

	s.logger.Info("exam attempt saved and exited", zap.Int("attempt_id", attemptID))
	return nil
}

// Snapshot returns the current state of an in-progress attempt.
func (s *ExamService) Snapshot(callerID string, attemptID int) (*models.ExamAttempt, error) {
	sess, err := s.session(callerID, attemptID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// Remaining returns the countdown value for polling clients.
func (s *ExamService) Remaining(callerID string, attemptID int) (int, error) {
	sess, err := s.session(callerID, attemptID)
	if err != nil {
		return 0, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.remaining, nil
}

// Assessments proxies the student's exam lobby, refreshed after submission.
func (s *ExamService) Assessments(ctx context.Context, token string) ([]models.AssessmentSummary, error) {
	assessments, err := s.gateway.ListAssessments(ctx, token)
	if err != nil {
		return nil, err
	}
	if assessments == nil {
		assessments = []models.AssessmentSummary{}
	}
	return assessments, nil
}

// session resolves an attempt for the student who started it. A foreign
// attempt is indistinguishable from a missing one, so attempt ids leak
// nothing across students.
func (s *ExamService) session(callerID string, attemptID int) (*examSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[attemptID]
	if !ok || sess.studentID != callerID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no active attempt with this id")
	}
	return sess, nil
}

func (s *ExamService) remove(sess *examSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.attemptID)
	key := sessionKey(sess.studentID, sess.assessmentID)
	if id, ok := s.byStudent[key]; ok && id == sess.attemptID {
		delete(s.byStudent, key)
	}
}

func (s *ExamService) snapshot(sess *examSession) *models.ExamAttempt {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	attempt := &models.ExamAttempt{
		AttemptID:        sess.attemptID,
		AssessmentID:     sess.assessmentID,
		StudentID:        sess.studentID,
		RemainingSeconds: sess.remaining,
		Resumed:          sess.resumed,
		Exam:             sess.exam,
		AnswerText:       sess.answerText,
		StartedAt:        sess.startedAt,
	}
	if sess.answerFile != nil {
		attempt.HasFile = true
		attempt.FileName = sess.answerFile.Name
	}
	return attempt
}

func (s *ExamService) extensionAllowed(ext string) bool {
	for _, allowed := range s.cfg.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

func (s *ExamService) invalidateDashboard(ctx context.Context, token string) {
	if !s.cache.Enabled() {
		return
	}
	_ = s.cache.Invalidate(ctx, dashboardCacheKey(token))
}

func sessionKey(studentID string, assessmentID int) string {
	return fmt.Sprintf("%s/%d", studentID, assessmentID)
}
