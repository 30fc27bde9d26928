package dna

import "time"

// Category is a top-level section of the DNA instruction table.
type Category string

const (
	CategoryPsychometrics Category = "PSYCHOMETRICS"
	CategoryPADBaseline   Category = "PAD_BASELINE"
	CategoryLinguistics   Category = "LINGUISTICS"
	CategoryChronemics    Category = "CHRONEMICS"
	CategoryIdentity      Category = "IDENTITY"
	CategorySales         Category = "SALES"
)

// Trait names a configurable key inside a category.
type Trait string

const (
	TraitOpenness          Trait = Trait(Openness)
	TraitConscientiousness Trait = Trait(Conscientiousness)
	TraitExtraversion      Trait = Trait(Extraversion)
	TraitAgreeableness     Trait = Trait(Agreeableness)
	TraitNeuroticism       Trait = Trait(Neuroticism)

	TraitPleasure  Trait = "pleasure"
	TraitArousal   Trait = "arousal"
	TraitDominance Trait = "dominance"

	TraitCapsMode        Trait = "caps_mode"
	TraitReduction       Trait = "reduction_profile"
	TraitTypoInjection   Trait = "typo_injection"
	TraitCorrectionStyle Trait = "correction_style"
	TraitLatencyProfile  Trait = "latency_profile"
	TraitBurstiness      Trait = "burstiness"
	TraitRole            Trait = "role"
	TraitMethodology     Trait = "methodology"
)

type table map[Category]map[Trait]map[string]string

var library = table{
	CategoryPsychometrics: psychometrics,
	CategoryPADBaseline:   padBaseline,
	CategoryLinguistics:   linguistics,
	CategoryChronemics:    chronemics,
	CategoryIdentity:      identity,
	CategorySales:         sales,
}

// Lookup returns the instruction block for (category, trait, value). A miss means "no
// instruction" and is never an error.
func Lookup(category Category, trait Trait, value string) (string, bool) {
	traits, ok := library[category]
	if !ok {
		return "", false
	}
	values, ok := traits[trait]
	if !ok {
		return "", false
	}
	text, ok := values[value]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

func Psychometric(axis BigFive, level Level) (string, bool) {
	return Lookup(CategoryPsychometrics, Trait(axis), string(level))
}

func PADPleasure(p Pleasure) (string, bool) {
	return Lookup(CategoryPADBaseline, TraitPleasure, string(p))
}

func PADArousal(l Level) (string, bool) {
	return Lookup(CategoryPADBaseline, TraitArousal, string(l))
}

func PADDominance(d Dominance) (string, bool) {
	return Lookup(CategoryPADBaseline, TraitDominance, string(d))
}

func Caps(m CapsMode) (string, bool) {
	return Lookup(CategoryLinguistics, TraitCapsMode, string(m))
}

func Reduction(p ReductionProfile) (string, bool) {
	return Lookup(CategoryLinguistics, TraitReduction, string(p))
}

func Typo(l TypoLevel) (string, bool) {
	return Lookup(CategoryLinguistics, TraitTypoInjection, string(l))
}

func Correction(c CorrectionStyle) (string, bool) {
	return Lookup(CategoryLinguistics, TraitCorrectionStyle, string(c))
}

func Latency(p LatencyProfile) (string, bool) {
	return Lookup(CategoryChronemics, TraitLatencyProfile, string(p))
}

func Burst(l Level) (string, bool) {
	return Lookup(CategoryChronemics, TraitBurstiness, string(l))
}

func RoleBlueprint(r Role) (string, bool) {
	return Lookup(CategoryIdentity, TraitRole, string(r))
}

func MethodologySummary(m Methodology) (string, bool) {
	return Lookup(CategorySales, TraitMethodology, string(m))
}

// LatencyWindow is the typing-delay range an orchestrator should wait before sending a reply
// for the given profile. Unknown profiles get the HUMAN window.
func LatencyWindow(p LatencyProfile) (min, max time.Duration) {
	switch p {
	case LatencyInstant:
		return 0, 2 * time.Second
	case LatencyRelaxed:
		return 20 * time.Second, 90 * time.Second
	default:
		return 4 * time.Second, 15 * time.Second
	}
}
