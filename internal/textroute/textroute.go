// Package textroute classifies short free-text queries by keyword. Rules are
// evaluated in order and the first rule with a matching keyword answers.
package textroute

import (
	"strings"
	"unicode"
)

// Rule answers a query when any of its keywords starts at a word boundary
// in it, so "step" matches "steps" but "cara" does not match "secara".
type Rule[T any] struct {
	Name     string
	Keywords []string
	Answer   func(T) string
}

// Router holds an ordered rule list and a fallback.
type Router[T any] struct {
	rules    []Rule[T]
	fallback func(T) string
}

// FallbackName is reported when no rule matched.
const FallbackName = "default"

func New[T any](fallback func(T) string, rules ...Rule[T]) *Router[T] {
	out := make([]Rule[T], 0, len(rules))
	for _, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = Normalize(k); k != "" {
				kw = append(kw, k)
			}
		}
		r.Keywords = kw
		out = append(out, r)
	}
	return &Router[T]{rules: out, fallback: fallback}
}

// Route returns the name of the matching rule and its answer for in.
func (r *Router[T]) Route(query string, in T) (string, string) {
	q := Normalize(query)
	if q != "" {
		for _, rule := range r.rules {
			if rule.matches(q) {
				return rule.Name, rule.Answer(in)
			}
		}
	}
	return FallbackName, r.fallback(in)
}

func (r Rule[T]) matches(q string) bool {
	q = " " + q
	for _, k := range r.Keywords {
		if strings.Contains(q, " "+k) {
			return true
		}
	}
	return false
}

// Normalize lower-cases s and reduces it to words joined by single spaces.
// Punctuation separates words.
func Normalize(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}
