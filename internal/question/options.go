package question

import (
	"math/big"
	"math/rand"
	"slices"
)

// shuffled places correct among wrong in random order and returns the
// position of correct after the shuffle.
func shuffled(rng *rand.Rand, correct string, wrong ...string) ([]string, int) {
	opts := make([]string, 0, len(wrong)+1)
	opts = append(opts, correct)
	opts = append(opts, wrong...)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts, slices.Index(opts, correct)
}

// build assembles a Question with shuffled options.
func build(rng *rand.Rand, category, prompt, rationale string, concepts []string, correct string, wrong ...string) Question {
	opts, idx := shuffled(rng, correct, wrong...)
	return Question{
		Category:     category,
		Prompt:       prompt,
		Options:      opts,
		CorrectIndex: idx,
		Rationale:    rationale,
		Concepts:     concepts,
	}
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

// ratOffsets renders base, base+d1, base+d2, ... exactly.
func ratOffsets(base *big.Rat, deltas ...int64) []string {
	out := make([]string, 0, len(deltas))
	for _, d := range deltas {
		v := new(big.Rat).Add(base, new(big.Rat).SetInt64(d))
		out = append(out, v.RatString())
	}
	return out
}

// bankItem is a fixed question whose options are shuffled on every draw.
type bankItem struct {
	Prompt    string
	Correct   string
	Wrong     [OptionCount - 1]string
	Rationale string
	Concepts  []string
}

// fromBank returns a generator drawing uniformly from items.
func fromBank(category string, items []bankItem) GeneratorFunc {
	return func(rng *rand.Rand, _ Level) Question {
		it := pick(rng, items)
		return build(rng, category, it.Prompt, it.Rationale, slices.Clone(it.Concepts), it.Correct, it.Wrong[:]...)
	}
}
