package models

import (
	"encoding/json"
	"time"
)

// StartAttemptResult mirrors the upstream start-exam response verbatim.
// The backend alone decides whether the attempt is fresh or resumed.
type StartAttemptResult struct {
	AttemptID            int             `json:"attempt_id"`
	TimeRemainingSeconds int             `json:"time_remaining_seconds"`
	Exam                 json.RawMessage `json:"exam"`
	IsResumed            bool            `json:"is_resumed"`
}

// AnswerFile holds a client-uploaded answer document kept in session state
// until submission.
type AnswerFile struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content []byte `json:"-"`
}

// ExamAttempt is a snapshot of a student's in-progress attempt. The local
// countdown mirrors the authoritative server deadline for display only.
type ExamAttempt struct {
	AttemptID        int             `json:"attempt_id"`
	AssessmentID     int             `json:"assessment_id"`
	StudentID        string          `json:"student_id"`
	RemainingSeconds int             `json:"remaining_seconds"`
	Resumed          bool            `json:"resumed"`
	Exam             json.RawMessage `json:"exam,omitempty"`
	AnswerText       string          `json:"answer_text"`
	HasFile          bool            `json:"has_file"`
	FileName         string          `json:"file_name,omitempty"`
	StartedAt        time.Time       `json:"started_at"`
}

// AssessmentSummary lists an assessment in the student's exam lobby.
type AssessmentSummary struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	CourseCode  string     `json:"course_code"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Submitted   bool       `json:"submitted"`
	DurationMin int        `json:"duration_minutes"`
}

// AnswerPayload carries the text answer for an in-progress attempt.
type AnswerPayload struct {
	Text string `json:"text"`
}

// SubmitPayload carries the explicit confirmation for a manual submit.
// Auto-submit on timeout bypasses confirmation.
type SubmitPayload struct {
	Confirmed bool `json:"confirmed"`
}
