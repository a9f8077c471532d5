package question

func one(g GeneratorFunc) []Weighted { return []Weighted{{Generator: g, Weight: 1}} }

// DefaultEntries is the built-in subject table. Callers may extend a copy
// before handing it to NewRegistry.
func DefaultEntries() map[Subject][]Weighted {
	return map[Subject][]Weighted{
		TPSPU:  one(fromBank("TPS-PU", reasoningBank)),
		TPSPPU: one(fromBank("TPS-PPU", verbalBank)),
		TPSPBM: {
			{Generator: readingPBM(mainIdea, "main idea"), Weight: 1},
			{Generator: readingPBM(conclusion, "conclusion"), Weight: 1},
		},
		TPSPK: {
			{Generator: GeneratorFunc(arithmeticSequence), Weight: 2},
			{Generator: GeneratorFunc(discount), Weight: 1},
			{Generator: linearEquation("TPS-PK", "linear equation"), Weight: 2},
		},
		LitBIN:  one(litBIN),
		LitBING: one(litBING),
		PM: {
			{Generator: GeneratorFunc(ratio), Weight: 1},
			{Generator: GeneratorFunc(linearFunction), Weight: 1},
			{Generator: GeneratorFunc(probability), Weight: 1},
		},
		MatWajib:  one(linearEquation("TKA-MAT", "linear equation")),
		MatLanjut: one(linearSystem),
		Fisika: {
			{Generator: GeneratorFunc(velocity), Weight: 1},
			{Generator: GeneratorFunc(force), Weight: 1},
		},
		Kimia:     one(moles),
		Biologi:   one(fromBank("TKA-BIOLOGI", biologyBank)),
		Ekonomi:   one(fromBank("TKA-EKONOMI", economicsBank)),
		Geografi:  one(fromBank("TKA-GEOGRAFI", geographyBank)),
		Sejarah:   one(fromBank("TKA-SEJARAH", historyBank)),
		Sosiologi: one(fromBank("TKA-SOSIOLOGI", sociologyBank)),
	}
}

// NewDefaultRegistry builds the registry from DefaultEntries.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return r
}
