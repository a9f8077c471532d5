package question

import (
	"fmt"
	"math/big"
	"math/rand"
	"strconv"
)

// linearSystem builds a 2×2 system with a unique integer solution and asks
// for x. Coefficients are resampled until the determinant is non-zero.
func linearSystem(rng *rand.Rand, lvl Level) Question {
	hi := 6 + lvl.Tier()
	var a1, b1, a2, b2 int
	for {
		a1, b1 = between(rng, 1, hi), between(rng, 1, hi)
		a2, b2 = between(rng, 1, hi), between(rng, 1, hi)
		if a1*b2-a2*b1 != 0 {
			break
		}
	}
	x0 := between(rng, 1, 8)
	y0 := between(rng, 1, 8)
	c1 := a1*x0 + b1*y0
	c2 := a2*x0 + b2*y0

	det := a1*b2 - a2*b1
	x := big.NewRat(int64(c1*b2-c2*b1), int64(det))
	rationale := fmt.Sprintf(
		"Multiply the first equation by %d and the second by %d.\n"+
			"Subtract to eliminate y: (%d·%d - %d·%d)x = %d·%d - %d·%d.\n"+
			"%dx = %d, so x = %s.",
		b2, b1, a1, b2, a2, b1, c1, b2, c2, b1, det, c1*b2-c2*b1, x.RatString())
	opts := ratOffsets(x, 0, 1, -1, 2)
	return build(rng, "TKA-MAT-LANJUT",
		fmt.Sprintf("Given:\n%dx + %dy = %d\n%dx + %dy = %d\nThe value of x is…", a1, b1, c1, a2, b2, c2),
		rationale,
		[]string{"system of linear equations", "elimination"},
		opts[0], opts[1:]...)
}

func velocity(rng *rand.Rand, lvl Level) Question {
	s := between(rng, 20, 100*(lvl.Tier()+1))
	t := between(rng, 2, 20)
	v := big.NewRat(int64(s), int64(t))
	opts := ratOffsets(v, 0, 1, -1, 2)
	return build(rng, "TKA-FISIKA",
		fmt.Sprintf("An object travels %d m in %d s at constant speed. Its speed (m/s) is…", s, t),
		fmt.Sprintf("v = s/t = %d/%d = %s m/s", s, t, v.RatString()),
		[]string{"uniform motion"},
		opts[0], opts[1:]...)
}

func force(rng *rand.Rand, lvl Level) Question {
	m := between(rng, 2, 5*lvl.Tier()+5)
	a := between(rng, 2, 10)
	f := m * a
	return build(rng, "TKA-FISIKA",
		fmt.Sprintf("The net force on a mass m = %d kg accelerating at a = %d m/s² is… (N)", m, a),
		fmt.Sprintf("F = m·a = %d·%d = %d N", m, a, f),
		[]string{"Newton's second law"},
		strconv.Itoa(f), strconv.Itoa(f+m), strconv.Itoa(f-m), strconv.Itoa(f+2*m))
}

// moles computes n = m/Mr rounded to two decimals using integer arithmetic.
func moles(rng *rand.Rand, _ Level) Question {
	m := between(rng, 10, 120)
	mr := pick(rng, []int{18, 44, 58, 60, 98})
	cents := (200*m + mr) / (2 * mr)
	lower := cents - 10
	if lower <= 0 {
		lower = cents + 30
	}
	return build(rng, "TKA-KIMIA",
		fmt.Sprintf("The number of moles in %d g of a substance with Mr %d is…", m, mr),
		fmt.Sprintf("n = m/Mr = %d/%d ≈ %s mol", m, mr, hundredths(cents)),
		[]string{"mole"},
		hundredths(cents), hundredths(cents+10), hundredths(lower), hundredths(cents+20))
}

func hundredths(c int) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

var biologyBank = []bankItem{
	{
		Prompt:    "The organelle where cellular respiration takes place is the…",
		Correct:   "Mitochondrion",
		Wrong:     [3]string{"Ribosome", "Lysosome", "Chloroplast"},
		Rationale: "Mitochondria carry out aerobic respiration and produce ATP.",
		Concepts:  []string{"organelles"},
	},
	{
		Prompt:    "Crossing Aa × Aa gives a genotype ratio of…",
		Correct:   "1 : 2 : 1",
		Wrong:     [3]string{"3 : 1", "1 : 1", "9 : 3 : 3 : 1"},
		Rationale: "The Punnett square gives AA, Aa, Aa, aa, i.e. 1 AA : 2 Aa : 1 aa.",
		Concepts:  []string{"genetics", "monohybrid cross"},
	},
	{
		Prompt:    "Photosynthesis converts light energy into chemical energy in the…",
		Correct:   "Chloroplast",
		Wrong:     [3]string{"Nucleus", "Golgi apparatus", "Vacuole"},
		Rationale: "Chloroplasts contain chlorophyll, which captures light for photosynthesis.",
		Concepts:  []string{"photosynthesis", "organelles"},
	},
}

var economicsBank = []bankItem{
	{
		Prompt:    "Inflation is…",
		Correct:   "A sustained rise in the general price level",
		Wrong:     [3]string{"A brief fall in the exchange rate", "A rise in civil servant salaries", "A fall in factory output"},
		Rationale: "Inflation is a continuous increase in the general level of prices.",
		Concepts:  []string{"inflation"},
	},
	{
		Prompt:    "When the price of a normal good rises, ceteris paribus, the quantity demanded…",
		Correct:   "Falls",
		Wrong:     [3]string{"Rises", "Stays the same", "Becomes zero"},
		Rationale: "The law of demand: price and quantity demanded move in opposite directions.",
		Concepts:  []string{"law of demand"},
	},
}

var geographyBank = []bankItem{
	{
		Prompt:    "Urbanisation is…",
		Correct:   "Migration from rural areas to cities",
		Wrong:     [3]string{"Migration from cities to rural areas", "Births in urban areas", "Expansion of forests"},
		Rationale: "Urbanisation describes the movement of population into cities.",
		Concepts:  []string{"demography"},
	},
	{
		Prompt:    "The layer of the atmosphere where weather occurs is the…",
		Correct:   "Troposphere",
		Wrong:     [3]string{"Stratosphere", "Mesosphere", "Thermosphere"},
		Rationale: "Almost all water vapour and weather systems are in the troposphere.",
		Concepts:  []string{"atmosphere"},
	},
}

var historyBank = []bankItem{
	{
		Prompt:    "Chronology means…",
		Correct:   "The order of events in time",
		Wrong:     [3]string{"Cause and effect", "The author's interpretation", "Comparison of cultures"},
		Rationale: "Chronology arranges events by when they happened.",
		Concepts:  []string{"chronology"},
	},
	{
		Prompt:    "A primary historical source is…",
		Correct:   "Evidence produced at the time of the event",
		Wrong:     [3]string{"A modern textbook summary", "A novel set in the past", "An encyclopedia entry"},
		Rationale: "Primary sources come directly from the period being studied.",
		Concepts:  []string{"historical sources"},
	},
}

var sociologyBank = []bankItem{
	{
		Prompt:    "Socialisation is the process of…",
		Correct:   "Internalising norms and values",
		Wrong:     [3]string{"Changing the climate", "Raising taxes", "Drafting legislation"},
		Rationale: "Socialisation is how individuals learn the norms and values of their society.",
		Concepts:  []string{"socialisation"},
	},
	{
		Prompt:    "Social mobility refers to…",
		Correct:   "Movement of people between social positions",
		Wrong:     [3]string{"Migration of animals", "Transport infrastructure", "Spread of rumours"},
		Rationale: "Social mobility is the change of an individual's or group's social status.",
		Concepts:  []string{"social mobility"},
	},
}
