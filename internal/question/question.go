// Package question generates practice questions. A Registry maps each
// subject to a weighted set of generators; every generator is a pure
// function of a random source and a difficulty level.
package question

import "math"

// Question is one generated multiple-choice item together with its answer
// key. Options always has exactly OptionCount entries and CorrectIndex
// indexes into it.
type Question struct {
	Category     string
	Prompt       string
	Options      []string
	CorrectIndex int
	Rationale    string
	Concepts     []string
}

// OptionCount is the number of options every generator produces.
const OptionCount = 4

// Level is a continuous difficulty in [MinLevel, MaxLevel].
type Level float64

const (
	MinLevel Level = 1.0
	MaxLevel Level = 3.0
)

// ClampLevel forces v into the valid range. NaN maps to MinLevel.
func ClampLevel(v float64) Level {
	switch {
	case math.IsNaN(v) || v < float64(MinLevel):
		return MinLevel
	case v > float64(MaxLevel):
		return MaxLevel
	}
	return Level(v)
}

// Tier buckets the level into 1, 2 or 3 for scaling numeric ranges.
func (l Level) Tier() int {
	switch {
	case l < 1.67:
		return 1
	case l < 2.67:
		return 2
	default:
		return 3
	}
}
