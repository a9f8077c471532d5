package exam

import "github.com/mind-engage/reasoned/internal/question"

// GenerateRequest asks for a question set. Zero values select defaults.
type GenerateRequest struct {
	Exam    string   `json:"exam"`
	Track   string   `json:"track"`
	Subject string   `json:"subject"`
	Level   *float64 `json:"level,omitempty"`
	N       int      `json:"n"`
	Seed    *int64   `json:"seed,omitempty"`
}

// PublicQuestion is what the caller sees. The answer key only travels
// inside Token.
type PublicQuestion struct {
	Subject  question.Subject `json:"subject"`
	Category string           `json:"category"`
	Prompt   string           `json:"prompt"`
	Options  []string         `json:"options"`
	Token    string           `json:"token"`
}

type SetResponse struct {
	SetID     string           `json:"set_id"`
	Exam      string           `json:"exam"`
	Track     string           `json:"track"`
	Subject   question.Subject `json:"subject"`
	Level     float64          `json:"level"`
	N         int              `json:"n"`
	Questions []PublicQuestion `json:"questions"`
}

type Answer struct {
	Token       string `json:"token"`
	ChosenIndex int    `json:"chosen_index"`
}

type ItemResult struct {
	Correct      bool             `json:"correct"`
	ChosenIndex  int              `json:"chosen_index"`
	CorrectIndex int              `json:"correct_index"`
	Rationale    string           `json:"rationale"`
	Concepts     []string         `json:"concepts"`
	Category     string           `json:"category"`
	Subject      question.Subject `json:"subject"`
}

type CheckResult struct {
	Score   int          `json:"score"`
	Total   int          `json:"total"`
	Results []ItemResult `json:"results"`
}

type ExplainRequest struct {
	Token    string `json:"token"`
	Question string `json:"question"`
}

type ExplainResponse struct {
	Answer string `json:"answer"`
}
