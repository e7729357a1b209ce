package models

// CourseEnrollment is one of the student's course registrations as reported
// by the upstream dashboard endpoint.
type CourseEnrollment struct {
	CourseID    int    `json:"course_id"`
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	TeacherName string `json:"teacher_name"`
	Status      string `json:"status"`
}

// DashboardSummary aggregates headline numbers for the student dashboard.
type DashboardSummary struct {
	ActiveCourses        int     `json:"active_courses"`
	PendingRequests      int     `json:"pending_requests"`
	CompletedAssessments int     `json:"completed_assessments"`
	AverageScore         float64 `json:"average_score"`
}

// StudentDashboard is the upstream dashboard payload proxied to the client.
type StudentDashboard struct {
	Enrollments []CourseEnrollment `json:"enrollments"`
	Summary     DashboardSummary   `json:"summary"`
}
