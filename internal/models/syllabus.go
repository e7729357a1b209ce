package models

// DifficultyLevel grades a course syllabus.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// CourseUnit is one ordered chapter/topic group within a course curriculum.
type CourseUnit struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

// CourseSyllabus is the static reference curriculum for a course, keyed by
// course code. Read-only after initialization.
type CourseSyllabus struct {
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	Credits    int             `json:"credits"`
	Difficulty DifficultyLevel `json:"difficulty"`
	Units      []CourseUnit    `json:"units"`
}
