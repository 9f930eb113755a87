package domain

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "upmind/internal/platform/errors"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

const OptionsPerQuestion = 4

type Request struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TechStack   []string   `json:"techStack"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category"`
}

// Normalize trims the request and fills the defaults: beginner difficulty
// and the general category.
func (r Request) Normalize() Request {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	if r.Category == "" {
		r.Category = "general"
	}
	r.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(r.Difficulty))))
	if r.Difficulty == "" {
		r.Difficulty = DifficultyBeginner
	}
	stack := make([]string, 0, len(r.TechStack))
	for _, s := range r.TechStack {
		if s = strings.TrimSpace(s); s != "" {
			stack = append(stack, s)
		}
	}
	r.TechStack = stack
	return r
}

func (r Request) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	switch r.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return nil
	default:
		return fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrInvalidInput, r.Difficulty)
	}
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("want %d options, got %d", OptionsPerQuestion, len(q.Options))
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionsPerQuestion {
		return fmt.Errorf("correct answer %d out of range", q.CorrectAnswer)
	}
	return nil
}

// ValidateQuestions accepts a non-empty set of well-formed questions.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("no questions")
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidAPIKey reports whether key looks like a usable provider key.
func ValidAPIKey(key string) bool {
	return len(key) > 10 && apiKeyPattern.MatchString(key)
}

// ExtractJSONObject returns the span from the first '{' to the last '}'.
func ExtractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return content[start : end+1], nil
}

var difficultyFocus = map[Difficulty]string{
	DifficultyBeginner:     "basic concepts and fundamentals",
	DifficultyIntermediate: "practical application and deeper understanding",
	DifficultyAdvanced:     "complex scenarios and expert-level knowledge",
}

// BuildPrompt renders the instruction sent to text-completion providers.
func BuildPrompt(r Request) string {
	return fmt.Sprintf(`Generate 3 educational questions for a %[1]s level video about %[2]q.

Video Description: %[3]s
Tech Stack: %[4]s
Category: %[5]s
Difficulty: %[6]s

Requirements:
- Questions should test understanding of the video content
- Include 4 multiple choice options per question (A, B, C, D)
- Mark the correct answer
- Provide a brief explanation for the correct answer
- Make questions engaging and practical
- Focus on %[1]s level concepts

Return the response in this exact JSON format:
{
  "questions": [
    {
      "question": "Your question here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Brief explanation of why this is correct"
    }
  ]
}`, r.Difficulty, r.Title, r.Description, strings.Join(r.TechStack, ", "), r.Category, difficultyFocus[r.Difficulty])
}
