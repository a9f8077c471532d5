package exam

import (
	"encoding/json"
	"errors"

	"github.com/mind-engage/reasoned/internal/question"
)

// Payload is the private half of a question, sealed inside its token.
// Field order fixes the signed byte form.
type Payload struct {
	CorrectIndex int              `json:"correct_index"`
	Rationale    string           `json:"rationale"`
	Concepts     []string         `json:"concepts"`
	Category     string           `json:"category"`
	Subject      question.Subject `json:"subject"`
	ExpiresAt    int64            `json:"expires_at"`
}

var errIncompletePayload = errors.New("payload missing correct_index or expires_at")

// UnmarshalJSON rejects payloads without an answer key or expiry instead of
// defaulting them to zero.
func (p *Payload) UnmarshalJSON(b []byte) error {
	var w struct {
		CorrectIndex *int             `json:"correct_index"`
		Rationale    string           `json:"rationale"`
		Concepts     []string         `json:"concepts"`
		Category     string           `json:"category"`
		Subject      question.Subject `json:"subject"`
		ExpiresAt    *int64           `json:"expires_at"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.CorrectIndex == nil || w.ExpiresAt == nil {
		return errIncompletePayload
	}
	if *w.CorrectIndex < 0 || *w.CorrectIndex >= question.OptionCount {
		return errors.New("payload correct_index out of range")
	}
	*p = Payload{
		CorrectIndex: *w.CorrectIndex,
		Rationale:    w.Rationale,
		Concepts:     w.Concepts,
		Category:     w.Category,
		Subject:      w.Subject,
		ExpiresAt:    *w.ExpiresAt,
	}
	return nil
}

func payloadFor(subj question.Subject, q question.Question, expiresAt int64) Payload {
	concepts := q.Concepts
	if concepts == nil {
		concepts = []string{}
	}
	return Payload{
		CorrectIndex: q.CorrectIndex,
		Rationale:    q.Rationale,
		Concepts:     concepts,
		Category:     q.Category,
		Subject:      subj,
		ExpiresAt:    expiresAt,
	}
}
