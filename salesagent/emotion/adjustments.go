package emotion

import "strings"

// Per-axis bounds. Values inside [LowThreshold, HighThreshold] produce no adjustment.
const (
	LowThreshold  = 0.3
	HighThreshold = 0.7
)

const (
	adjustLowPleasure         = `- The lead seems unhappy or frustrated. Be more careful and serious: no jokes, no emojis, acknowledge the problem before anything else and avoid pushing the sale.`
	adjustHighArousalNegative = `- The lead is agitated and upset. De-escalate: short calm sentences, validate the frustration, offer one concrete solution or a human handoff. Do not match their intensity.`
	adjustHighArousalPositive = `- The lead is excited and energetic. Match the energy: be lively and quick, keep momentum toward the next step.`
	adjustLowArousal          = `- The lead is low-energy or disengaged. Slow down: calmer pacing, shorter messages, one easy question at a time.`
	adjustHighDominance       = `- The lead wants control of the conversation. Be direct and efficient, give clear answers and let them drive decisions without losing the objective.`
	adjustLowDominance        = `- The lead seems hesitant or insecure. Be deferential and reassuring, guide gently and offer simple options instead of open decisions.`
	adjustHighPleasure        = `- The lead is in a good mood. Use a warmer, friendlier tone and build on the positive rapport.`
)

// AdjustmentText turns a PAD vector into behavioral adjustment instructions wrapped in one
// <emotional_state> block. The order is fixed: low pleasure, arousal, dominance, high pleasure.
// It returns "" when no rule fires.
func AdjustmentText(v Vector) string {
	v = v.Clamp()
	var rules []string

	if v.Pleasure < LowThreshold {
		rules = append(rules, adjustLowPleasure)
	}
	if v.Arousal > HighThreshold {
		if v.Pleasure < LowThreshold {
			rules = append(rules, adjustHighArousalNegative)
		} else {
			rules = append(rules, adjustHighArousalPositive)
		}
	} else if v.Arousal < LowThreshold {
		rules = append(rules, adjustLowArousal)
	}
	if v.Dominance > HighThreshold {
		rules = append(rules, adjustHighDominance)
	} else if v.Dominance < LowThreshold {
		rules = append(rules, adjustLowDominance)
	}
	if v.Pleasure > HighThreshold {
		rules = append(rules, adjustHighPleasure)
	}

	if len(rules) == 0 {
		return ""
	}
	return "<emotional_state>\nEmotional adjustments for this reply:\n" + strings.Join(rules, "\n") + "\n</emotional_state>"
}
