package question

import (
	"fmt"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
)

var reasoningBank = []bankItem{
	{
		Prompt:    "All A are B and some B are C. Are all A necessarily C?",
		Correct:   "Cannot be determined",
		Wrong:     [3]string{"Yes", "No", "Only if C is empty"},
		Rationale: "The B that are C need not include any A, so the premises do not settle it.",
		Concepts:  []string{"syllogism", "sets"},
	},
	{
		Prompt:    "If P implies Q and Q implies R, does P imply R?",
		Correct:   "Yes, by transitivity",
		Wrong:     [3]string{"No", "Only sometimes", "Cannot be determined"},
		Rationale: "Hypothetical syllogism: from P→Q and Q→R it follows that P→R.",
		Concepts:  []string{"implication", "transitivity"},
	},
	{
		Prompt:    "The negation of \"All students are present\" is…",
		Correct:   "Some student is not present",
		Wrong:     [3]string{"All students are absent", "Some students are present", "No student is present"},
		Rationale: "Negating a universal statement gives an existential one: ∀x P(x) becomes ∃x ¬P(x).",
		Concepts:  []string{"quantifier negation"},
	},
	{
		Prompt:    "If it rains, the field is wet. The field is not wet. Therefore…",
		Correct:   "It did not rain",
		Wrong:     [3]string{"It rained", "The field is dry because of the sun", "Nothing can be concluded"},
		Rationale: "Modus tollens: from P→Q and ¬Q conclude ¬P.",
		Concepts:  []string{"modus tollens"},
	},
}

var verbalBank = []bankItem{
	{
		Prompt:    "A synonym of \"meticulous\" is…",
		Correct:   "careful",
		Wrong:     [3]string{"careless", "hard", "slow"},
		Rationale: "A synonym has a similar meaning.",
		Concepts:  []string{"synonym"},
	},
	{
		Prompt:    "An antonym of \"optimistic\" is…",
		Correct:   "pessimistic",
		Wrong:     [3]string{"realistic", "objective", "patient"},
		Rationale: "An antonym has the opposite meaning.",
		Concepts:  []string{"antonym"},
	},
	{
		Prompt:    "Doctor : Hospital = Teacher : …",
		Correct:   "School",
		Wrong:     [3]string{"Market", "Terminal", "Post office"},
		Rationale: "The relation is a worker and the place where they work.",
		Concepts:  []string{"analogy"},
	},
}

// arithmeticSequence asks for the n-th term of an arithmetic sequence.
func arithmeticSequence(rng *rand.Rand, lvl Level) Question {
	t := lvl.Tier()
	a := between(rng, 2, 10)
	d := between(rng, 2, 5+t)
	n := between(rng, 5, 7+t)
	shown := make([]string, 0, n-1)
	for i := 0; i < n-1; i++ {
		shown = append(shown, strconv.Itoa(a+i*d))
	}
	ans := a + (n-1)*d
	return build(rng, "TPS-PK",
		fmt.Sprintf("Find term %d of: %s, ...", n, strings.Join(shown, ", ")),
		fmt.Sprintf("U_n = a + (n-1)d = %d + (%d-1)·%d = %d", a, n, d, ans),
		[]string{"arithmetic sequence"},
		strconv.Itoa(ans), strconv.Itoa(ans+d), strconv.Itoa(ans-d), strconv.Itoa(ans+2*d))
}

// discount asks for a price after a percentage discount.
func discount(rng *rand.Rand, _ Level) Question {
	price := between(rng, 50, 200) * 1000
	pct := pick(rng, []int{10, 15, 20, 25, 30})
	pay := price * (100 - pct) / 100
	return build(rng, "TPS-PK",
		fmt.Sprintf("An item costs %s with a %d%% discount. The price paid is…", rupiah(price), pct),
		fmt.Sprintf("Paid = %d × (100-%d)/100 = %d", price, pct, pay),
		[]string{"percent", "discount"},
		rupiah(pay), rupiah(pay+5000), rupiah(pay-5000), rupiah(pay+10000))
}

// linearEquation solves ax + b = c exactly; the root may be a fraction.
func linearEquation(category string, concepts ...string) GeneratorFunc {
	return func(rng *rand.Rand, lvl Level) Question {
		a := between(rng, 2, 9)
		b := between(rng, 1, 15)
		c := between(rng, 10, 50*lvl.Tier())
		sol := big.NewRat(int64(c-b), int64(a))
		opts := ratOffsets(sol, 0, 1, -1, 2)
		return build(rng, category,
			fmt.Sprintf("Solve: %dx + %d = %d", a, b, c),
			fmt.Sprintf("x = (%d - %d)/%d = %s", c, b, a, sol.RatString()),
			append([]string(nil), concepts...),
			opts[0], opts[1:]...)
	}
}

func ratio(rng *rand.Rand, _ Level) Question {
	a := between(rng, 2, 8)
	b := between(rng, 2, 8)
	k := between(rng, 2, 6)
	ans := b * k
	return build(rng, "PM",
		fmt.Sprintf("The ratio A:B is %d:%d. If A = %d, then B = …", a, b, a*k),
		fmt.Sprintf("A = %d·%d so the multiplier is k = %d.\nB = %d·%d = %d", a, k, k, b, k, ans),
		[]string{"ratio"},
		strconv.Itoa(ans), strconv.Itoa(ans+b), strconv.Itoa(ans-b), strconv.Itoa(ans+2*b))
}

func linearFunction(rng *rand.Rand, _ Level) Question {
	m := between(rng, 2, 6)
	n := between(rng, 1, 7)
	x := between(rng, 1, 5)
	y := m*x + n
	return build(rng, "PM",
		fmt.Sprintf("Given f(x) = %dx + %d, f(%d) = …", m, n, x),
		fmt.Sprintf("Substitute: f(%d) = %d·%d + %d = %d", x, m, x, n, y),
		[]string{"function"},
		strconv.Itoa(y), strconv.Itoa(y+m), strconv.Itoa(y-m), strconv.Itoa(y+2*m))
}

func probability(rng *rand.Rand, _ Level) Question {
	total := pick(rng, []int{6, 8, 10, 12})
	red := between(rng, 1, total-1)
	frac := func(p, q int) string { return fmt.Sprintf("%d/%d", p, q) }
	return build(rng, "PM",
		fmt.Sprintf("A bag holds %d balls, %d of them red. The probability of drawing a red ball is…", total, red),
		fmt.Sprintf("P = favourable / total = %d/%d", red, total),
		[]string{"probability"},
		frac(red, total), frac(total, red), frac(red, total+2), frac(red+1, total))
}

// rupiah formats n as "Rp125,000".
func rupiah(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}
