package question

import (
	"fmt"
	"math/rand"
)

type passage struct {
	Title           string
	Text            string
	MainIdea        string
	MainIdeaWrong   [OptionCount - 1]string
	Conclusion      string
	ConclusionWrong [OptionCount - 1]string
}

var passagesID = []passage{
	{
		Title: "Public Transport",
		Text: "Cities that improve the quality of public transport often see congestion fall. " +
			"Behaviour does not change overnight, however. Consistent service, integrated routes and " +
			"accessible information are needed before residents are willing to leave their private vehicles.",
		MainIdea: "Lasting change in how residents travel depends on consistent, well-supported public transport.",
		MainIdeaWrong: [3]string{
			"The passage presents complete congestion statistics.",
			"The passage recounts the long history of city buses.",
			"Private vehicles are cheaper than public transport.",
		},
		Conclusion: "Reducing congestion needs sustained improvement in service, not a one-off change.",
		ConclusionWrong: [3]string{
			"Congestion disappears as soon as a new route opens.",
			"Route information for the public is unnecessary.",
			"Residents never switch from private vehicles.",
		},
	},
	{
		Title: "Effective Study",
		Text: "Effective study depends not only on duration but on strategy. " +
			"Spacing out reviews, testing yourself and summarising in your own words build deeper " +
			"understanding than simply rereading the material.",
		MainIdea: "How one studies matters more than how long one studies.",
		MainIdeaWrong: [3]string{
			"Rereading is the most reliable study strategy.",
			"Longer study sessions always produce better results.",
			"Summaries should be copied word for word.",
		},
		Conclusion: "Active strategies such as self-testing lead to deeper understanding than rereading.",
		ConclusionWrong: [3]string{
			"Study duration is the only factor that matters.",
			"Self-testing wastes valuable study time.",
			"Understanding is guaranteed after one reading.",
		},
	},
	{
		Title: "Plastic Waste",
		Text: "Plastic waste can be reduced by limiting single-use plastics and increasing recycling. " +
			"Without a change in consumption habits, however, recycling policy alone rarely reduces " +
			"the volume of waste significantly.",
		MainIdea: "Cutting plastic waste requires changes in consumption habits alongside recycling.",
		MainIdeaWrong: [3]string{
			"Recycling has no effect on plastic waste.",
			"Single-use plastics are easy to recycle.",
			"The passage describes how plastic is manufactured.",
		},
		Conclusion: "Recycling policy is insufficient without changes in consumer behaviour.",
		ConclusionWrong: [3]string{
			"Recycling alone solves the plastic problem.",
			"Consumption habits cannot be changed.",
			"Plastic waste volume is already falling everywhere.",
		},
	},
}

var passageEN = passage{
	Title: "Habits and Progress",
	Text: "Small habits often produce meaningful progress over time. However, results are rarely immediate. " +
		"Consistency, feedback, and realistic goals help people maintain new routines and avoid giving up too early.",
	MainIdea: "Small, consistent habits lead to progress when they are sustained.",
	MainIdeaWrong: [3]string{
		"Large changes are the only way to make progress.",
		"Feedback discourages people from keeping routines.",
		"Progress from habits is always immediate.",
	},
	Conclusion: "Lasting progress needs patience and consistency rather than instant results.",
	ConclusionWrong: [3]string{
		"Results from small habits always appear at once.",
		"Realistic goals make people give up sooner.",
		"Feedback is irrelevant to keeping a routine.",
	},
}

type readingKind int

const (
	mainIdea readingKind = iota
	conclusion
)

func readingQuestion(rng *rand.Rand, category string, p passage, kind readingKind, concepts []string) Question {
	body := fmt.Sprintf("Passage: %s\n\n%s\n\n", p.Title, p.Text)
	switch kind {
	case conclusion:
		return build(rng, category,
			body+"Question: Which conclusion best follows from the passage?",
			"A valid conclusion follows from the passage without adding new claims.",
			concepts, p.Conclusion, p.ConclusionWrong[:]...)
	default:
		return build(rng, category,
			body+"Question: What is the main idea of the passage?",
			"The main idea is the central point that every sentence of the passage supports.",
			concepts, p.MainIdea, p.MainIdeaWrong[:]...)
	}
}

func readingPBM(kind readingKind, concept string) GeneratorFunc {
	return func(rng *rand.Rand, _ Level) Question {
		return readingQuestion(rng, "TPS-PBM", pick(rng, passagesID), kind, []string{"reading", concept})
	}
}

func litBIN(rng *rand.Rand, _ Level) Question {
	return readingQuestion(rng, "LITBIN", pick(rng, passagesID), mainIdea, []string{"literacy", "main idea"})
}

func litBING(rng *rand.Rand, _ Level) Question {
	return readingQuestion(rng, "LITBING", passageEN, conclusion, []string{"english reading", "conclusion"})
}
