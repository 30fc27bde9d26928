// Package dna holds the agent DNA vocabulary: the typed categorical values a tenant can
// configure for an agent persona, and the constant table of behavioral instructions that each
// value maps to.
package dna

import "strings"

// Level is the shared LOW/MEDIUM/HIGH scale used by psychometric traits, arousal and burstiness.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Pleasure is the baseline hedonic tone of the persona.
type Pleasure string

const (
	PleasureNegative Pleasure = "NEGATIVE"
	PleasureNeutral  Pleasure = "NEUTRAL"
	PleasurePositive Pleasure = "POSITIVE"
)

// Dominance is the baseline conversational control the persona takes.
type Dominance string

const (
	DominanceSubmissive  Dominance = "SUBMISSIVE"
	DominanceEgalitarian Dominance = "EGALITARIAN"
	DominanceDominant    Dominance = "DOMINANT"
)

// CapsMode controls capitalization habits.
type CapsMode string

const (
	CapsStandard      CapsMode = "STANDARD"
	CapsLowercaseOnly CapsMode = "LOWERCASE_ONLY"
	CapsShoutEmphasis CapsMode = "SHOUT_EMPHASIS"
)

// ReductionProfile controls abbreviations and slang.
type ReductionProfile string

const (
	ReductionCorporate ReductionProfile = "CORPORATE"
	ReductionNatural   ReductionProfile = "NATURAL"
	ReductionHeavy     ReductionProfile = "HEAVY"
)

// TypoLevel controls how often deliberate human-like typos appear.
type TypoLevel string

const (
	TypoNone   TypoLevel = "NONE"
	TypoLow    TypoLevel = "LOW"
	TypoMedium TypoLevel = "MEDIUM"
	TypoHigh   TypoLevel = "HIGH"
)

// CorrectionStyle controls how the persona fixes its own typos.
type CorrectionStyle string

const (
	CorrectionNone     CorrectionStyle = "NONE"
	CorrectionAsterisk CorrectionStyle = "ASTERISK"
	CorrectionNatural  CorrectionStyle = "NATURAL"
)

// LatencyProfile controls how fast the persona appears to answer.
type LatencyProfile string

const (
	LatencyInstant LatencyProfile = "INSTANT"
	LatencyHuman   LatencyProfile = "HUMAN"
	LatencyRelaxed LatencyProfile = "RELAXED"
)

// Role selects the behavioral blueprint of the agent.
type Role string

const (
	RoleSDR        Role = "SDR"
	RoleSupport    Role = "SUPPORT"
	RoleCloser     Role = "CLOSER"
	RoleConsultant Role = "CONSULTANT"
)

// Methodology is the sales framework the agent follows.
type Methodology string

const (
	MethodologySPIN       Methodology = "SPIN"
	MethodologyBANT       Methodology = "BANT"
	MethodologyChallenger Methodology = "CHALLENGER"
	MethodologySandler    Methodology = "SANDLER"
	MethodologyGPCT       Methodology = "GPCT"
)

// BigFive names one psychometric axis.
type BigFive string

const (
	Openness          BigFive = "openness"
	Conscientiousness BigFive = "conscientiousness"
	Extraversion      BigFive = "extraversion"
	Agreeableness     BigFive = "agreeableness"
	Neuroticism       BigFive = "neuroticism"
)

// BigFiveOrder is the fixed rendering order of the psychometric axes.
var BigFiveOrder = []BigFive{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism}

var accentFolder = strings.NewReplacer(
	"-", "_", " ", "_",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A",
	"É", "E", "Ê", "E", "Í", "I",
	"Ó", "O", "Ô", "O", "Õ", "O", "Ú", "U", "Ç", "C",
)

func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return accentFolder.Replace(s)
}

// ParseLevel accepts LOW/MEDIUM/HIGH and common aliases (including Portuguese ones).
func ParseLevel(s string) (Level, bool) {
	switch normalize(s) {
	case "LOW", "BAIXO", "BAIXA":
		return LevelLow, true
	case "MEDIUM", "MID", "MODERATE", "MEDIO", "MEDIA":
		return LevelMedium, true
	case "HIGH", "ALTO", "ALTA":
		return LevelHigh, true
	}
	return "", false
}

func ParsePleasure(s string) (Pleasure, bool) {
	switch normalize(s) {
	case "NEGATIVE", "NEGATIVO", "LOW":
		return PleasureNegative, true
	case "NEUTRAL", "NEUTRO", "MEDIUM":
		return PleasureNeutral, true
	case "POSITIVE", "POSITIVO", "HIGH":
		return PleasurePositive, true
	}
	return "", false
}

func ParseDominance(s string) (Dominance, bool) {
	switch normalize(s) {
	case "SUBMISSIVE", "SUBMISSO", "LOW":
		return DominanceSubmissive, true
	case "EGALITARIAN", "IGUALITARIO", "MEDIUM":
		return DominanceEgalitarian, true
	case "DOMINANT", "DOMINANTE", "HIGH":
		return DominanceDominant, true
	}
	return "", false
}

func ParseCapsMode(s string) (CapsMode, bool) {
	switch normalize(s) {
	case "STANDARD", "NORMAL", "PADRAO":
		return CapsStandard, true
	case "LOWERCASE_ONLY", "LOWERCASE", "LOWER":
		return CapsLowercaseOnly, true
	case "SHOUT_EMPHASIS", "CAPS_EMPHASIS", "SHOUT":
		return CapsShoutEmphasis, true
	}
	return "", false
}

func ParseReductionProfile(s string) (ReductionProfile, bool) {
	switch normalize(s) {
	case "CORPORATE", "CORPORATIVO", "FORMAL":
		return ReductionCorporate, true
	case "NATURAL", "NATIVE", "CASUAL":
		return ReductionNatural, true
	case "HEAVY", "SLANG", "GIRIA":
		return ReductionHeavy, true
	}
	return "", false
}

func ParseTypoLevel(s string) (TypoLevel, bool) {
	switch normalize(s) {
	case "NONE", "OFF", "NENHUM":
		return TypoNone, true
	}
	if l, ok := ParseLevel(s); ok {
		return TypoLevel(l), true
	}
	return "", false
}

func ParseCorrectionStyle(s string) (CorrectionStyle, bool) {
	switch normalize(s) {
	case "NONE", "OFF":
		return CorrectionNone, true
	case "ASTERISK", "ASTERISK_POST", "STAR":
		return CorrectionAsterisk, true
	case "NATURAL", "INLINE":
		return CorrectionNatural, true
	}
	return "", false
}

func ParseLatencyProfile(s string) (LatencyProfile, bool) {
	switch normalize(s) {
	case "INSTANT", "FAST", "IMEDIATO":
		return LatencyInstant, true
	case "HUMAN", "HUMANO", "NORMAL":
		return LatencyHuman, true
	case "RELAXED", "SLOW", "LENTO":
		return LatencyRelaxed, true
	}
	return "", false
}

func ParseRole(s string) (Role, bool) {
	switch normalize(s) {
	case "SDR", "PROSPECTOR", "PRE_VENDAS":
		return RoleSDR, true
	case "SUPPORT", "SUPORTE", "CS":
		return RoleSupport, true
	case "CLOSER", "VENDEDOR", "ACCOUNT_EXECUTIVE", "AE":
		return RoleCloser, true
	case "CONSULTANT", "CONSULTOR", "ADVISOR":
		return RoleConsultant, true
	}
	return "", false
}

func ParseMethodology(s string) (Methodology, bool) {
	switch normalize(s) {
	case "SPIN", "SPIN_SELLING":
		return MethodologySPIN, true
	case "BANT":
		return MethodologyBANT, true
	case "CHALLENGER", "CHALLENGER_SALE":
		return MethodologyChallenger, true
	case "SANDLER":
		return MethodologySandler, true
	case "GPCT", "GPCT_BA_C_I":
		return MethodologyGPCT, true
	}
	return "", false
}
