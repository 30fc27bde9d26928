// Package emotion implements the PAD (Pleasure/Arousal/Dominance) affect model kept per lead:
// a clamped three-axis vector, its decay update after every AI turn, the natural-language
// adjustment it contributes to the system prompt, and the stores it persists to.
package emotion

import (
	"fmt"
	"math"
	"strings"
)

// Vector is one PAD state. Every component lives in [0,1].
type Vector struct {
	Pleasure  float64 `json:"pleasure"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// Neutral is the state of a lead with no recorded turns.
func Neutral() Vector {
	return Vector{Pleasure: 0.5, Arousal: 0.5, Dominance: 0.5}
}

// Clamp returns v with every component forced into [0,1]. NaN becomes the neutral 0.5.
func (v Vector) Clamp() Vector {
	return Vector{
		Pleasure:  clamp01(v.Pleasure),
		Arousal:   clamp01(v.Arousal),
		Dominance: clamp01(v.Dominance),
	}
}

// Label is a short human-readable reading of the vector for logs and dashboards.
func (v Vector) Label() string {
	v = v.Clamp()
	var parts []string
	switch {
	case v.Pleasure < LowThreshold:
		parts = append(parts, "unhappy")
	case v.Pleasure > HighThreshold:
		parts = append(parts, "pleased")
	}
	switch {
	case v.Arousal > HighThreshold:
		parts = append(parts, "agitated")
	case v.Arousal < LowThreshold:
		parts = append(parts, "calm")
	}
	switch {
	case v.Dominance > HighThreshold:
		parts = append(parts, "assertive")
	case v.Dominance < LowThreshold:
		parts = append(parts, "hesitant")
	}
	if len(parts) == 0 {
		return "neutral"
	}
	return strings.Join(parts, "+")
}

func (v Vector) String() string {
	return fmt.Sprintf("P=%.2f A=%.2f D=%.2f", v.Pleasure, v.Arousal, v.Dominance)
}

// Key builds the store key for a lead, optionally scoped to one agent.
func Key(leadID, agentID string) string {
	leadID = strings.TrimSpace(leadID)
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return leadID
	}
	return leadID + ":" + agentID
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0.5
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
