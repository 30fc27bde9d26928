// Package salesagent builds the system prompt for one AI turn of a WhatsApp sales agent and
// holds the typed configuration, conversation context and reply handling around it.
package salesagent

import "github.com/theimaginaryfoundation/axis-agent/salesagent/dna"

// DefaultLanguage is used when an agent does not configure one.
const DefaultLanguage = "pt-BR"

// AgentConfig is the parsed, typed form of a tenant's agent record. Enum fields left as "" and
// nil groups mean "not configured" and produce no instructions.
type AgentConfig struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	JobTitle    string   `json:"job_title,omitempty"`
	Role        dna.Role `json:"role,omitempty"`
	Company     string   `json:"company,omitempty"`
	Tone        []string `json:"tone,omitempty"`
	Personality string   `json:"personality,omitempty"`
	Language    string   `json:"language,omitempty"`

	DNA *DNAConfig `json:"dna,omitempty"`

	Product     string          `json:"product,omitempty"`
	ICP         *ICP            `json:"icp,omitempty"`
	Methodology dna.Methodology `json:"methodology,omitempty"`
	Objections  []Objection     `json:"objections,omitempty"`
	Sliders     *ToneSliders    `json:"sliders,omitempty"`
	Tools       []CustomTool    `json:"tools,omitempty"`
}

type DNAConfig struct {
	Psychometrics *Psychometrics `json:"psychometrics,omitempty"`
	PADBaseline   *PADBaseline   `json:"pad_baseline,omitempty"`
	Linguistics   *Linguistics   `json:"linguistics,omitempty"`
	Chronemics    *Chronemics    `json:"chronemics,omitempty"`
	BrandVoice    *BrandVoice    `json:"brand_voice,omitempty"`
	Compliance    *Compliance    `json:"compliance,omitempty"`
}

type Psychometrics struct {
	Openness          dna.Level `json:"openness,omitempty"`
	Conscientiousness dna.Level `json:"conscientiousness,omitempty"`
	Extraversion      dna.Level `json:"extraversion,omitempty"`
	Agreeableness     dna.Level `json:"agreeableness,omitempty"`
	Neuroticism       dna.Level `json:"neuroticism,omitempty"`
}

// Level returns the configured level for one Big Five axis, "" when unset.
func (p *Psychometrics) Level(axis dna.BigFive) dna.Level {
	if p == nil {
		return ""
	}
	switch axis {
	case dna.Openness:
		return p.Openness
	case dna.Conscientiousness:
		return p.Conscientiousness
	case dna.Extraversion:
		return p.Extraversion
	case dna.Agreeableness:
		return p.Agreeableness
	case dna.Neuroticism:
		return p.Neuroticism
	}
	return ""
}

type PADBaseline struct {
	Pleasure  dna.Pleasure  `json:"pleasure,omitempty"`
	Arousal   dna.Level     `json:"arousal,omitempty"`
	Dominance dna.Dominance `json:"dominance,omitempty"`
}

type Linguistics struct {
	CapsMode         dna.CapsMode         `json:"caps_mode,omitempty"`
	ReductionProfile dna.ReductionProfile `json:"reduction_profile,omitempty"`
	TypoInjection    dna.TypoLevel        `json:"typo_injection,omitempty"`
	CorrectionStyle  dna.CorrectionStyle  `json:"correction_style,omitempty"`
}

type Chronemics struct {
	LatencyProfile dna.LatencyProfile `json:"latency_profile,omitempty"`
	Burstiness     dna.Level          `json:"burstiness,omitempty"`
}

// BrandVoice carries brand restrictions. EmojisAllowed is nil when the tenant never set it.
type BrandVoice struct {
	ProhibitedWords []string `json:"prohibited_words,omitempty"`
	EmojisAllowed   *bool    `json:"emojis_allowed,omitempty"`
}

type Compliance struct {
	Rules []string `json:"rules,omitempty"`
}

// ICP is the ideal customer profile the agent sells to.
type ICP struct {
	Segment       string   `json:"segment,omitempty"`
	CompanySize   string   `json:"company_size,omitempty"`
	DecisionMaker string   `json:"decision_maker,omitempty"`
	Pains         []string `json:"pains,omitempty"`
}

func (i *ICP) empty() bool {
	return i == nil || (i.Segment == "" && i.CompanySize == "" && i.DecisionMaker == "" && len(i.Pains) == 0)
}

// Objection is one canned objection-handling entry.
type Objection struct {
	Trigger  string `json:"trigger"`
	Response string `json:"response"`
}

// SliderMax is the top of the tone slider scale.
const SliderMax = 5

// ToneSliders are 0..SliderMax dials; nil means not configured.
type ToneSliders struct {
	Formality  *int `json:"formality,omitempty"`
	Humor      *int `json:"humor,omitempty"`
	Enthusiasm *int `json:"enthusiasm,omitempty"`
}

// CustomTool is an external HTTP tool the agent may call through a structured reply.
type CustomTool struct {
	Name        string   `json:"name"`
	Method      string   `json:"method,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Parameters  []string `json:"parameters,omitempty"`
}

func (a *AgentConfig) dnaConfig() *DNAConfig {
	if a == nil || a.DNA == nil {
		return &DNAConfig{}
	}
	return a.DNA
}

func (a *AgentConfig) language() string {
	if a == nil || a.Language == "" {
		return DefaultLanguage
	}
	return a.Language
}

func (a *AgentConfig) emojisDisabled() bool {
	bv := a.dnaConfig().BrandVoice
	return bv != nil && bv.EmojisAllowed != nil && !*bv.EmojisAllowed
}

func (a *AgentConfig) extraversion() dna.Level {
	return a.dnaConfig().Psychometrics.Level(dna.Extraversion)
}

func (a *AgentConfig) reductionProfile() dna.ReductionProfile {
	if l := a.dnaConfig().Linguistics; l != nil {
		return l.ReductionProfile
	}
	return ""
}
