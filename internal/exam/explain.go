package exam

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/reasoned/internal/textroute"
)

const maxSteps = 10

var optionLetters = [...]string{"A", "B", "C", "D"}

// explainRules is content configuration. Order matters.
var explainRules = textroute.New(
	func(p Payload) string {
		return "Ask about: concept, formula, steps or answer.\n\nRationale:\n" + p.Rationale
	},
	textroute.Rule[Payload]{
		Name:     "concept",
		Keywords: []string{"concept", "topic", "material", "konsep", "materi", "topik"},
		Answer: func(p Payload) string {
			concepts := "-"
			if len(p.Concepts) > 0 {
				concepts = strings.Join(p.Concepts, ", ")
			}
			return fmt.Sprintf("Category: %s (%s)\nConcepts: %s", p.Category, p.Subject, concepts)
		},
	},
	textroute.Rule[Payload]{
		Name:     "formula",
		Keywords: []string{"formula", "equation", "rumus"},
		Answer: func(p Payload) string {
			return "The formula follows from the concepts above.\n\nRationale:\n" + p.Rationale
		},
	},
	textroute.Rule[Payload]{
		Name:     "steps",
		Keywords: []string{"step", "how do", "how to", "langkah", "cara"},
		Answer:   steps,
	},
	textroute.Rule[Payload]{
		Name:     "answer",
		Keywords: []string{"correct answer", "answer key", "which option", "kunci", "jawaban benar"},
		Answer: func(p Payload) string {
			return fmt.Sprintf("Correct answer: option %s.", optionLetters[p.CorrectIndex])
		},
	},
)

func steps(p Payload) string {
	var lines []string
	for _, ln := range strings.Split(p.Rationale, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, "- "+ln)
		}
		if len(lines) == maxSteps {
			break
		}
	}
	if len(lines) == 0 {
		return "Steps:\n" + p.Rationale
	}
	return "Steps:\n" + strings.Join(lines, "\n")
}

// Explain answers a free-text question about one token's bundled state.
func (s *Service) Explain(_ context.Context, req ExplainRequest) (ExplainResponse, error) {
	p, err := s.open("explain", req.Token)
	if err != nil {
		return ExplainResponse{}, err
	}
	if !s.registry.Has(p.Subject) {
		return ExplainResponse{}, fmt.Errorf("%w: %s", ErrUnknownCategory, p.Subject)
	}
	_, answer := explainRules.Route(req.Question, p)
	return ExplainResponse{Answer: answer}, nil
}
