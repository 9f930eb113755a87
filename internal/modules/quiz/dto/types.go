package dto

type GenerateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Difficulty  string   `json:"difficulty"`
	Category    string   `json:"category"`
}

type QuestionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GenerateOutput names the provider that answered, or "fallback".
type GenerateOutput struct {
	Provider  string           `json:"provider"`
	Fallback  bool             `json:"fallback"`
	Questions []QuestionOutput `json:"questions"`
}

type ProviderStatusOutput struct {
	Provider string `json:"provider"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}
