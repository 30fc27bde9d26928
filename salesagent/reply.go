package salesagent

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/fileutils"
)

// CRM action names the model may emit in crm_actions.
const (
	ActionUpdateStatus    = "UPDATE_STATUS"
	ActionUpdateField     = "UPDATE_FIELD"
	ActionAddTag          = "ADD_TAG"
	ActionCreateTask      = "CREATE_TASK"
	ActionScheduleMeeting = "SCHEDULE_MEETING"
	ActionRequestHuman    = "REQUEST_HUMAN"
	ActionMarkLost        = "MARK_LOST"
)

// Lead-protection actions pass regardless of scope.
var scopeExempt = map[string]bool{
	ActionRequestHuman: true,
	ActionMarkLost:     true,
}

var mutatingActions = map[string]bool{
	ActionUpdateStatus:    true,
	ActionUpdateField:     true,
	ActionAddTag:          true,
	ActionCreateTask:      true,
	ActionScheduleMeeting: true,
}

// CRMAction is one side effect requested by the model.
type CRMAction struct {
	Action string `json:"action"`
	Field  string `json:"field,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// ToolCall is a request to invoke one configured CustomTool.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// AIReply is the structured reply the override layer asks the model for.
type AIReply struct {
	Thought            string         `json:"thought"`
	Response           string         `json:"response"`
	ReadyToClose       bool           `json:"ready_to_close"`
	CRMActions         []CRMAction    `json:"crm_actions"`
	SentimentScore     float64        `json:"sentiment_score"`
	ConfidenceScore    float64        `json:"confidence_score"`
	QualificationSlots map[string]any `json:"qualification_slots"`
	ToolCall           *ToolCall      `json:"tool_call,omitempty"`
}

type rawReply struct {
	Thought            string         `json:"thought"`
	Response           string         `json:"response"`
	ReadyToClose       bool           `json:"ready_to_close"`
	CRMActions         []CRMAction    `json:"crm_actions"`
	SentimentScore     *float64       `json:"sentiment_score"`
	ConfidenceScore    *float64       `json:"confidence_score"`
	QualificationSlots map[string]any `json:"qualification_slots"`
	ToolCall           *ToolCall      `json:"tool_call"`
}

// ErrEmptyReply is returned when the model produced neither a response nor a tool call.
var ErrEmptyReply = errors.New("model reply has no response and no tool call")

// ParseReply decodes the model output and enforces the reply contract: scores are clamped to
// [0,1] (missing scores read as 0.5), ready_to_close is dropped when a tool call is pending and
// CRM-mutating actions are removed unless scope is WRITE. Each correction is reported as a
// warning.
func ParseReply(text string, scope ScopePolicy) (AIReply, []string, error) {
	var raw rawReply
	if err := fileutils.DecodeModelJSON(text, &raw); err != nil {
		return AIReply{}, nil, fmt.Errorf("ParseReply: %w", err)
	}

	var warnings []string
	reply := AIReply{
		Thought:            strings.TrimSpace(raw.Thought),
		Response:           strings.TrimSpace(raw.Response),
		ReadyToClose:       raw.ReadyToClose,
		SentimentScore:     score(raw.SentimentScore),
		ConfidenceScore:    score(raw.ConfidenceScore),
		QualificationSlots: raw.QualificationSlots,
		ToolCall:           raw.ToolCall,
	}
	if reply.ToolCall != nil && strings.TrimSpace(reply.ToolCall.Name) == "" {
		warnings = append(warnings, "tool_call without name dropped")
		reply.ToolCall = nil
	}
	if reply.ToolCall == nil && reply.Response == "" {
		return AIReply{}, nil, fmt.Errorf("ParseReply: %w", ErrEmptyReply)
	}
	if reply.ToolCall != nil && reply.ReadyToClose {
		warnings = append(warnings, "ready_to_close dropped: tool call pending")
		reply.ReadyToClose = false
	}

	writable := scope.Writable()
	for _, a := range raw.CRMActions {
		a.Action = normalizeToken(a.Action)
		if a.Action == "" {
			continue
		}
		if !writable && !scopeExempt[a.Action] && (mutatingActions[a.Action] || !isKnownAction(a.Action)) {
			warnings = append(warnings, fmt.Sprintf("crm action %s dropped: scope is READ_ONLY", a.Action))
			continue
		}
		reply.CRMActions = append(reply.CRMActions, a)
	}
	return reply, warnings, nil
}

func isKnownAction(a string) bool {
	return mutatingActions[a] || scopeExempt[a]
}

// HasAction reports whether the reply requests the named CRM action.
func (r AIReply) HasAction(action string) bool {
	for _, a := range r.CRMActions {
		if a.Action == action {
			return true
		}
	}
	return false
}

func score(f *float64) float64 {
	if f == nil || math.IsNaN(*f) {
		return 0.5
	}
	return min(max(*f, 0), 1)
}
