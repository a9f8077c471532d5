package material

// Builtin is the chapter set installed by the seed-materials command.
var Builtin = []Material{
	{
		Subject:  "KIMIA",
		Chapter:  "Stoichiometry",
		Summary:  "Covers the mole concept, Mr/Ar and the ratio of reaction coefficients.",
		Formulas: "n = m/Mr; n = V/22.4 (STP); M = n/V; mole ratio = coefficient ratio",
		Examples: "Example: moles in 10 g of H2O (Mr 18): n = 10/18 = 0.56 mol.",
	},
	{
		Subject:  "KIMIA",
		Chapter:  "Solutions and pH",
		Summary:  "Molarity is moles of solute per litre of solution; pH measures acidity.",
		Formulas: "M = n/V; pH = -log[H+]; pOH = -log[OH-]; pH + pOH = 14",
		Examples: "Example: [H+] = 10^-3 gives pH = 3.",
	},
	{
		Subject:  "FISIKA",
		Chapter:  "Linear Motion",
		Summary:  "Uniform motion has constant velocity; uniformly accelerated motion has constant acceleration.",
		Formulas: "v = s/t; v = v0 + at; s = v0t + 1/2at^2; v^2 = v0^2 + 2as",
		Examples: "Example: v0 = 0, a = 2, t = 5 gives v = 10 m/s and s = 25 m.",
	},
	{
		Subject:  "FISIKA",
		Chapter:  "Newton's Laws",
		Summary:  "Relates force, mass and acceleration; every action has an equal reaction.",
		Formulas: "ΣF = m·a; w = m·g; friction f = μN",
		Examples: "Example: m = 2 kg, a = 3 m/s² gives ΣF = 6 N.",
	},
	{
		Subject:  "MATEMATIKA",
		Chapter:  "Derivatives",
		Summary:  "A derivative is a rate of change and the gradient of the tangent line.",
		Formulas: "(x^n)' = n x^(n-1); (sin x)' = cos x; (cos x)' = -sin x",
		Examples: "Example: f(x) = x^3 gives f'(x) = 3x^2.",
	},
	{
		Subject:  "MATEMATIKA",
		Chapter:  "Integrals",
		Summary:  "Integration reverses differentiation and measures area or accumulation.",
		Formulas: "∫x^n dx = x^(n+1)/(n+1) + C (n ≠ -1); ∫1/x dx = ln|x| + C",
		Examples: "Example: ∫2x dx = x^2 + C.",
	},
	{
		Subject:  "BIOLOGI",
		Chapter:  "Basic Genetics",
		Summary:  "Genes sit on chromosomes and inheritance follows Mendel's laws.",
		Formulas: "Terms: genotype/phenotype, dominant/recessive, monohybrid cross",
		Examples: "Example: Aa × Aa gives a 1:2:1 genotype ratio.",
	},
}
