package exam

import (
	"context"
	"fmt"

	"github.com/mind-engage/reasoned/internal/question"
)

// CheckSet grades answers purely from their tokens. Any invalid or expired
// token fails the whole batch and no partial results are returned.
func (s *Service) CheckSet(ctx context.Context, answers []Answer) (CheckResult, error) {
	if len(answers) == 0 {
		return CheckResult{}, invalid("answers", "must not be empty")
	}
	if len(answers) > s.maxN {
		return CheckResult{}, invalid("answers", "at most %d per request", s.maxN)
	}
	for i, a := range answers {
		if a.ChosenIndex < 0 || a.ChosenIndex >= question.OptionCount {
			return CheckResult{}, invalid("chosen_index", "answer %d: must be between 0 and %d", i, question.OptionCount-1)
		}
	}

	res := CheckResult{Total: len(answers), Results: make([]ItemResult, 0, len(answers))}
	for i, a := range answers {
		if err := ctx.Err(); err != nil {
			return CheckResult{}, err
		}
		p, err := s.open("check_set", a.Token)
		if err != nil {
			return CheckResult{}, fmt.Errorf("answer %d: %w", i, err)
		}
		ok := a.ChosenIndex == p.CorrectIndex
		if ok {
			res.Score++
		}
		res.Results = append(res.Results, ItemResult{
			Correct:      ok,
			ChosenIndex:  a.ChosenIndex,
			CorrectIndex: p.CorrectIndex,
			Rationale:    p.Rationale,
			Concepts:     p.Concepts,
			Category:     p.Category,
			Subject:      p.Subject,
		})
	}
	return res, nil
}
