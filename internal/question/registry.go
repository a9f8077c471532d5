package question

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrUnknownSubject is returned for a subject with no registered generators.
var ErrUnknownSubject = errors.New("unknown subject")

// Generator produces one question. Implementations must only draw
// randomness from rng, which is owned by the caller and not shared across
// goroutines.
type Generator interface {
	Generate(rng *rand.Rand, lvl Level) Question
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(rng *rand.Rand, lvl Level) Question

func (f GeneratorFunc) Generate(rng *rand.Rand, lvl Level) Question { return f(rng, lvl) }

// Weighted pairs a generator with a positive selection weight.
type Weighted struct {
	Generator Generator
	Weight    int
}

// Registry is an immutable subject → weighted generators table.
type Registry struct {
	entries map[Subject][]Weighted
}

// NewRegistry validates and copies entries. Every subject needs at least one
// generator and every weight must be positive.
func NewRegistry(entries map[Subject][]Weighted) (*Registry, error) {
	out := make(map[Subject][]Weighted, len(entries))
	for subj, items := range entries {
		if len(items) == 0 {
			return nil, fmt.Errorf("registry: subject %s has no generators", subj)
		}
		for i, it := range items {
			if it.Generator == nil {
				return nil, fmt.Errorf("registry: subject %s entry %d has nil generator", subj, i)
			}
			if it.Weight <= 0 {
				return nil, fmt.Errorf("registry: subject %s entry %d has weight %d", subj, i, it.Weight)
			}
		}
		out[subj] = append([]Weighted(nil), items...)
	}
	return &Registry{entries: out}, nil
}

// Has reports whether subj has registered generators.
func (r *Registry) Has(subj Subject) bool {
	_, ok := r.entries[subj]
	return ok
}

// Subjects lists the registered subjects in lexical order.
func (r *Registry) Subjects() []Subject {
	out := make([]Subject, 0, len(r.entries))
	for s := range r.entries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Pick chooses a generator for subj with probability weight/total.
func (r *Registry) Pick(rng *rand.Rand, subj Subject) (Generator, error) {
	items, ok := r.entries[subj]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, subj)
	}
	return pickWeighted(rng, items), nil
}

// Generate dispatches to a weighted generator for subj.
func (r *Registry) Generate(rng *rand.Rand, subj Subject, lvl Level) (Question, error) {
	g, err := r.Pick(rng, subj)
	if err != nil {
		return Question{}, err
	}
	return g.Generate(rng, lvl), nil
}

// pickWeighted draws d uniformly from [1, total] and returns the first item
// whose cumulative weight reaches d.
func pickWeighted(rng *rand.Rand, items []Weighted) Generator {
	total := 0
	for _, it := range items {
		total += it.Weight
	}
	d := rng.Intn(total) + 1
	acc := 0
	for _, it := range items {
		acc += it.Weight
		if d <= acc {
			return it.Generator
		}
	}
	return items[len(items)-1].Generator
}
