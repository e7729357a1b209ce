package models

import "time"

// ApprovalStatus represents the lifecycle of an approvable request.
type ApprovalStatus string

// Possible approval statuses. Transitions run pending -> approved or
// pending -> rejected and are terminal once non-pending.
const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// ApprovalKind identifies which approval workflow a request belongs to.
type ApprovalKind string

// The four approvable entity kinds.
const (
	KindTeacherApplication ApprovalKind = "teacher-applications"
	KindStudentApplication ApprovalKind = "student-applications"
	KindSubjectRequest     ApprovalKind = "subject-requests"
	KindEnrollmentRequest  ApprovalKind = "enrollment-requests"
)

// Valid reports whether the kind is one of the known workflows.
func (k ApprovalKind) Valid() bool {
	switch k {
	case KindTeacherApplication, KindStudentApplication, KindSubjectRequest, KindEnrollmentRequest:
		return true
	}
	return false
}

// ApprovalRequest is the uniform shape shared by teacher applications,
// student applications, subject-teaching requests and enrollment requests.
// SubjectID and CourseID are absent for account applications.
type ApprovalRequest struct {
	ID              int            `json:"id"`
	FullName        string         `json:"full_name"`
	Email           string         `json:"email"`
	SubjectID       *int           `json:"subject_id,omitempty"`
	CourseID        *int           `json:"course_id,omitempty"`
	Status          ApprovalStatus `json:"status"`
	SubmittedAt     time.Time      `json:"submitted_at"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
}

// Decision names the two terminal outcomes of an approval workflow.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// RejectPayload carries the required rejection reason.
type RejectPayload struct {
	Reason string `json:"reason" validate:"required"`
}
