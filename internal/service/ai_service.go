package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

type completionGateway interface {
	Complete(ctx context.Context, token, path, prompt string) (string, error)
}

// AIServiceConfig tunes the AI-assist flow.
type AIServiceConfig struct {
	CompletionPath string
	ResourceCount  int
}

// AIService builds natural-language prompts for the external completion
// service and extracts structured data from its free-text replies. The AI is
// an untrusted collaborator: every consumption point tolerates malformed
// structure and, for resource recommendations, degrades to static content
// rather than breaking the surrounding workflow.
type AIService struct {
	gateway completionGateway
	logger  *zap.Logger
	cfg     AIServiceConfig
}

// NewAIService constructs an AIService.
func NewAIService(gateway completionGateway, logger *zap.Logger, cfg AIServiceConfig) *AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResourceCount <= 0 {
		cfg.ResourceCount = 5
	}
	if cfg.CompletionPath == "" {
		cfg.CompletionPath = "/students/ai/complete/"
	}
	return &AIService{gateway: gateway, logger: logger, cfg: cfg}
}

// BuildResourcePrompt renders the deterministic resource-recommendation
// template. The no-generic-URL instruction is an intent signal to the model,
// not something the parser can enforce.
func (s *AIService) BuildResourcePrompt(courseTitle, chapter, difficulty string) string {
	return fmt.Sprintf(
		"Recommend exactly %d high-quality learning resources for the chapter %q of the course %q at %s level. "+
			"Respond with only a JSON array where each element has the fields: "+
			`"title" (string), "type" (one of "video", "course", "article", "tutorial"), `+
			`"provider" (string), "url" (string), "duration" (string), "free" (boolean), "description" (string). `+
			"Every url must point at a specific resource page, never a generic search or category page.",
		s.cfg.ResourceCount, chapter, courseTitle, difficulty)
}

// BuildQuizPrompt renders the practice-quiz template.
func (s *AIService) BuildQuizPrompt(courseTitle, chapter, difficulty string, questionCount int) string {
	if questionCount <= 0 {
		questionCount = 5
	}
	return fmt.Sprintf(
		"Create a practice quiz with exactly %d multiple-choice questions on the chapter %q of the course %q at %s level. "+
			"Respond with only a JSON object with a \"title\" string and a \"questions\" array where each element has: "+
			`"question" (string), "options" (array of 4 strings), "correct_answer" (string equal to one option), `+
			`"explanation" (string), "points" (integer).`,
		questionCount, chapter, courseTitle, difficulty)
}

// ParseResourceList extracts validated resources from a raw AI reply. It
// strips markdown code fences, bracket-matches the first top-level JSON
// array and keeps only elements carrying all required fields with a known
// type. When nothing validates it returns the canned fallback list, never an
// empty result and never a partially-invalid entry.
func (s *AIService) ParseResourceList(raw, courseTitle, chapter string) []models.AIResource {
	span := extractJSONArray(stripCodeFences(raw))
	if span == "" {
		s.logger.Debug("no JSON array found in AI reply, using fallback")
		return s.fallbackResources(courseTitle, chapter)
	}

	var candidates []models.AIResource
	if err := json.Unmarshal([]byte(span), &candidates); err != nil {
		s.logger.Debug("AI reply failed structural parse, using fallback", zap.Error(err))
		return s.fallbackResources(courseTitle, chapter)
	}

	valid := make([]models.AIResource, 0, len(candidates))
	for _, candidate := range candidates {
		if resourceValid(candidate) {
			valid = append(valid, candidate)
		}
	}
	if len(valid) == 0 {
		return s.fallbackResources(courseTitle, chapter)
	}
	return valid
}

// ParseQuiz is a structural pass-through for the backend-proxied quiz shape.
// There is no safe generic fallback for quiz content, so a malformed reply
// propagates as a failure.
func (s *AIService) ParseQuiz(raw string) (*models.PracticeQuiz, error) {
	cleaned := stripCodeFences(raw)
	var quiz models.PracticeQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedAI.Code, appErrors.ErrMalformedAI.Status, "quiz response could not be parsed")
	}
	if len(quiz.Questions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMalformedAI, "quiz response contained no questions")
	}
	return &quiz, nil
}

// RecommendResources runs the full prompt -> completion -> parse/fallback
// flow for a chapter.
func (s *AIService) RecommendResources(ctx context.Context, token, courseTitle, chapter, difficulty string) ([]models.AIResource, error) {
	prompt := s.BuildResourcePrompt(courseTitle, chapter, difficulty)
	reply, err := s.gateway.Complete(ctx, token, s.cfg.CompletionPath, prompt)
	if err != nil {
		return nil, err
	}
	return s.ParseResourceList(reply, courseTitle, chapter), nil
}

// GeneratePracticeQuiz runs the quiz flow. Parse failures surface to the
// caller as a malformed-response error.
func (s *AIService) GeneratePracticeQuiz(ctx context.Context, token, courseTitle, chapter, difficulty string, questionCount int) (*models.PracticeQuiz, error) {
	prompt := s.BuildQuizPrompt(courseTitle, chapter, difficulty, questionCount)
	reply, err := s.gateway.Complete(ctx, token, s.cfg.CompletionPath, prompt)
	if err != nil {
		return nil, err
	}
	return s.ParseQuiz(reply)
}

// fallbackResources builds the deterministic canned list from the course and
// chapter names with provider search URLs.
func (s *AIService) fallbackResources(courseTitle, chapter string) []models.AIResource {
	topic := strings.TrimSpace(chapter)
	if topic == "" {
		topic = courseTitle
	}
	query := url.QueryEscape(fmt.Sprintf("%s %s", courseTitle, topic))

	return []models.AIResource{
		{
			Title:       fmt.Sprintf("%s - Video Lectures", topic),
			Type:        models.ResourceTypeVideo,
			Provider:    "YouTube",
			URL:         "https://www.youtube.com/results?search_query=" + query,
			Free:        true,
			Description: fmt.Sprintf("Curated video lectures covering %s.", topic),
		},
		{
			Title:       fmt.Sprintf("%s - Online Course", topic),
			Type:        models.ResourceTypeCourse,
			Provider:    "Coursera",
			URL:         "https://www.coursera.org/search?query=" + query,
			Free:        false,
			Description: fmt.Sprintf("Structured courses on %s from university partners.", topic),
		},
		{
			Title:       fmt.Sprintf("%s - In-Depth Articles", topic),
			Type:        models.ResourceTypeArticle,
			Provider:    "GeeksforGeeks",
			URL:         "https://www.geeksforgeeks.org/?s=" + query,
			Free:        true,
			Description: fmt.Sprintf("Reference articles and worked examples for %s.", topic),
		},
		{
			Title:       fmt.Sprintf("%s - Hands-On Tutorial", topic),
			Type:        models.ResourceTypeTutorial,
			Provider:    "freeCodeCamp",
			URL:         "https://www.freecodecamp.org/news/search/?query=" + query,
			Free:        true,
			Description: fmt.Sprintf("Practical walkthroughs to practice %s.", topic),
		},
		{
			Title:       fmt.Sprintf("%s - Interactive Lessons", topic),
			Type:        models.ResourceTypeCourse,
			Provider:    "Khan Academy",
			URL:         "https://www.khanacademy.org/search?page_search_query=" + query,
			Free:        true,
			Description: fmt.Sprintf("Self-paced lessons and exercises on %s.", topic),
		},
	}
}

func resourceValid(r models.AIResource) bool {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Provider) == "" || strings.TrimSpace(r.URL) == "" {
		return false
	}
	return r.Type.Valid()
}

// stripCodeFences removes markdown code-fence markers around a reply.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line, e.g. ```json.
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// extractJSONArray locates the first top-level [...] span via bracket
// matching, skipping brackets inside string literals.
func extractJSONArray(raw string) string {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}
