package material

import (
	"context"

	"github.com/mind-engage/reasoned/internal/textroute"
)

func orElse(s, empty string) string {
	if s == "" {
		return empty
	}
	return s
}

var tutorRules = textroute.New(
	func(m Material) string {
		return "I can help with:\n" +
			"- type: summary\n" +
			"- type: formula\n" +
			"- type: example\n\n" +
			"Summary:\n" + orElse(m.Summary, "-")
	},
	textroute.Rule[Material]{
		Name:     "formula",
		Keywords: []string{"formula", "equation", "rumus", "persamaan"},
		Answer:   func(m Material) string { return orElse(m.Formulas, "This chapter has no formula list yet.") },
	},
	textroute.Rule[Material]{
		Name:     "example",
		Keywords: []string{"example", "exercise", "practice", "contoh", "latihan", "soal"},
		Answer:   func(m Material) string { return orElse(m.Examples, "This chapter has no worked examples yet.") },
	},
	textroute.Rule[Material]{
		Name:     "summary",
		Keywords: []string{"summary", "summarise", "summarize", "explain", "definition", "ringkas", "inti", "jelaskan", "pengertian"},
		Answer:   func(m Material) string { return orElse(m.Summary, "This chapter has no summary yet.") },
	},
)

// Tutor answers keyword questions about one chapter.
type Tutor struct {
	store *Store
}

func NewTutor(store *Store) *Tutor { return &Tutor{store: store} }

func (t *Tutor) Chat(ctx context.Context, chapterID int64, question string) (string, error) {
	m, err := t.store.Get(ctx, chapterID)
	if err != nil {
		return "", err
	}
	_, answer := tutorRules.Route(question, m)
	return answer, nil
}
