package models

// AIResourceType enumerates accepted resource types in AI replies.
type AIResourceType string

const (
	ResourceTypeVideo    AIResourceType = "video"
	ResourceTypeCourse   AIResourceType = "course"
	ResourceTypeArticle  AIResourceType = "article"
	ResourceTypeTutorial AIResourceType = "tutorial"
)

// Valid reports whether the type is one of the enumerated values.
func (t AIResourceType) Valid() bool {
	switch t {
	case ResourceTypeVideo, ResourceTypeCourse, ResourceTypeArticle, ResourceTypeTutorial:
		return true
	}
	return false
}

// AIResource is a learning resource recommendation extracted from an AI
// completion. Title, Type, Provider and URL are required for acceptance.
type AIResource struct {
	Title       string         `json:"title"`
	Type        AIResourceType `json:"type"`
	Provider    string         `json:"provider"`
	URL         string         `json:"url"`
	Duration    string         `json:"duration,omitempty"`
	Free        bool           `json:"free"`
	Description string         `json:"description,omitempty"`
}

// AIQuizQuestion is one generated practice question.
type AIQuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
}

// PracticeQuiz is a generated practice quiz passed through to the client.
type PracticeQuiz struct {
	Title     string           `json:"title"`
	Questions []AIQuizQuestion `json:"questions"`
}
