package salesagent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

// ScopePolicy says whether the AI may emit CRM-mutating actions this turn.
type ScopePolicy string

const (
	ScopeReadOnly ScopePolicy = "READ_ONLY"
	ScopeWrite    ScopePolicy = "WRITE"
)

// Writable reports whether s grants write access. Anything other than WRITE is read-only.
func (s ScopePolicy) Writable() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(ScopeWrite))
}

// Message roles in the chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one WhatsApp message, oldest first in ConversationContext.History.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Campaign struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name,omitempty"`
	CompanyName      string `json:"company_name,omitempty"`
	Industry         string `json:"industry,omitempty"`
	IndustryTag      string `json:"industry_tag,omitempty"`
	ValueProposition string `json:"value_proposition,omitempty"`
}

// Lead is the prospect on the other end of the conversation.
type Lead struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Status         string          `json:"status,omitempty"`
	Slots          map[string]any  `json:"slots,omitempty"`
	LastSentiment  *float64        `json:"last_sentiment,omitempty"`
	EmotionalState *emotion.Vector `json:"emotional_state,omitempty"`
}

// ConversationContext is everything the assembler knows about the current inbound message.
// It is built fresh per message and never mutated by the assembler.
type ConversationContext struct {
	Campaign      *Campaign     `json:"campaign,omitempty"`
	Lead          *Lead         `json:"lead,omitempty"`
	History       []ChatMessage `json:"history,omitempty"`
	NodeDirective string        `json:"node_directive,omitempty"`
	Scope         ScopePolicy   `json:"scope,omitempty"`
	Knowledge     string        `json:"knowledge,omitempty"`
}

// SlotFilled reports whether the lead already holds a non-empty value for name.
func (l *Lead) SlotFilled(name string) bool {
	if l == nil || l.Slots == nil {
		return false
	}
	return !isEmptySlotValue(l.Slots[name])
}

func isEmptySlotValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	}
	return false
}

// filledSlots renders the lead's non-empty slots in key order.
func (l *Lead) filledSlots() []string {
	if l == nil || len(l.Slots) == 0 {
		return nil
	}
	keys := make([]string, 0, len(l.Slots))
	for k := range l.Slots {
		if !isEmptySlotValue(l.Slots[k]) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%v", k, l.Slots[k]))
	}
	return out
}

// LeadKey is the PAD store key for the conversation: the lead (ID, else phone) joined with the
// agent ID. It is "" when the lead is unknown.
func LeadKey(agent *AgentConfig, cc *ConversationContext) string {
	if cc == nil || cc.Lead == nil {
		return ""
	}
	lead := strings.TrimSpace(cc.Lead.ID)
	if lead == "" {
		lead = strings.TrimSpace(cc.Lead.Phone)
	}
	if lead == "" {
		return ""
	}
	agentID := ""
	if agent != nil {
		agentID = strings.TrimSpace(agent.ID)
	}
	return emotion.Key(lead, agentID)
}
