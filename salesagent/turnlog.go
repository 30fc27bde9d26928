package salesagent

import (
	"fmt"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/fileutils"
)

// TurnRecord is one row of the turn log (JSONL), written by the orchestrator after each AI
// turn. Timestamps and IDs live here, never in the prompt.
type TurnRecord struct {
	TurnID    string `json:"turn_id"`
	LeadKey   string `json:"lead_key"`
	AgentID   string `json:"agent_id,omitempty"`
	Turn      int    `json:"turn"`
	CreatedAt string `json:"created_at"`

	Inbound      string      `json:"inbound"`
	Response     string      `json:"response,omitempty"`
	ToolCall     string      `json:"tool_call,omitempty"`
	ReadyToClose bool        `json:"ready_to_close"`
	CRMActions   []CRMAction `json:"crm_actions,omitempty"`

	SentimentScore  float64        `json:"sentiment_score"`
	ConfidenceScore float64        `json:"confidence_score"`
	PAD             emotion.Vector `json:"pad"`
	PADLabel        string         `json:"pad_label"`

	SlotsUpdated []string `json:"slots_updated,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	PromptRunes  int      `json:"prompt_runes"`
	CanaryLeaked bool     `json:"canary_leaked,omitempty"`
}

// TurnInput collects what BuildTurnRecord needs from one orchestrated turn.
type TurnInput struct {
	TurnID       string
	LeadKey      string
	AgentID      string
	Turn         int
	Inbound      string
	Reply        AIReply
	PAD          emotion.Vector
	SlotsUpdated []string
	Warnings     []string
	PromptRunes  int
	CanaryLeaked bool
	At           time.Time
}

func BuildTurnRecord(in TurnInput) TurnRecord {
	rec := TurnRecord{
		TurnID:          in.TurnID,
		LeadKey:         in.LeadKey,
		AgentID:         in.AgentID,
		Turn:            in.Turn,
		CreatedAt:       in.At.UTC().Format(time.RFC3339),
		Inbound:         strings.TrimSpace(in.Inbound),
		Response:        in.Reply.Response,
		ReadyToClose:    in.Reply.ReadyToClose,
		CRMActions:      in.Reply.CRMActions,
		SentimentScore:  in.Reply.SentimentScore,
		ConfidenceScore: in.Reply.ConfidenceScore,
		PAD:             in.PAD,
		PADLabel:        in.PAD.Label(),
		SlotsUpdated:    dedupeStrings(in.SlotsUpdated),
		Warnings:        dedupeStrings(in.Warnings),
		PromptRunes:     in.PromptRunes,
		CanaryLeaked:    in.CanaryLeaked,
	}
	if in.Reply.ToolCall != nil {
		rec.ToolCall = in.Reply.ToolCall.Name
	}
	return rec
}

// AppendTurnRecord appends rec to the JSONL turn log at path.
func AppendTurnRecord(path string, rec TurnRecord) error {
	if err := fileutils.AppendJSONL(path, rec); err != nil {
		return fmt.Errorf("AppendTurnRecord: %w", err)
	}
	return nil
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
