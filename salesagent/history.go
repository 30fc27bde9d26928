package salesagent

import (
	"fmt"
	"strings"
)

// Turn is one lead-led exchange: a lead message and the agent messages that followed it.
// Agent messages sent before the lead ever wrote (campaign openers) form a turn with an empty
// LeadText.
type Turn struct {
	Index        int    `json:"turn_index"`
	StartMessage int    `json:"start_message_index"`
	EndMessage   int    `json:"end_message_index"`
	LeadText     string `json:"lead_text,omitempty"`
	AgentText    string `json:"agent_text,omitempty"`
}

// GroupTurns groups a chat history into lead-led turns.
func GroupTurns(history []ChatMessage) []Turn {
	if len(history) == 0 {
		return nil
	}

	starts := make([]int, 0, len(history)/2+1)
	for i := range history {
		if history[i].Role == RoleUser {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 || starts[0] != 0 {
		starts = append([]int{0}, starts...)
	}

	turns := make([]Turn, 0, len(starts))
	for ti, start := range starts {
		end := len(history) - 1
		if ti+1 < len(starts) {
			end = starts[ti+1] - 1
		}
		turns = append(turns, turnFromRange(ti, start, end, history))
	}
	return turns
}

func turnFromRange(index, start, end int, msgs []ChatMessage) Turn {
	var leadParts, agentParts []string
	for i := start; i <= end && i < len(msgs); i++ {
		s := strings.TrimSpace(msgs[i].Text)
		if s == "" {
			continue
		}
		if msgs[i].Role == RoleUser {
			leadParts = append(leadParts, s)
		} else {
			agentParts = append(agentParts, s)
		}
	}
	return Turn{
		Index:        index,
		StartMessage: start,
		EndMessage:   end,
		LeadText:     strings.Join(leadParts, "\n"),
		AgentText:    strings.Join(agentParts, "\n"),
	}
}

// CountTurns is the number of lead messages in history. The turn being generated for a new
// inbound message is CountTurns(history)+1.
func CountTurns(history []ChatMessage) int {
	n := 0
	for _, m := range history {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// RecentHistory keeps the messages of the last maxTurns turns. maxTurns <= 0 keeps everything.
func RecentHistory(history []ChatMessage, maxTurns int) []ChatMessage {
	if maxTurns <= 0 {
		return history
	}
	turns := GroupTurns(history)
	if len(turns) <= maxTurns {
		return history
	}
	return history[turns[len(turns)-maxTurns].StartMessage:]
}

// BuildUserPrompt renders the recent history and the new inbound message as the user prompt
// sent alongside the system prompt.
func BuildUserPrompt(history []ChatMessage, inbound string, maxTurns int) string {
	var b strings.Builder
	recent := RecentHistory(history, maxTurns)
	if len(recent) > 0 {
		b.WriteString("<conversation_history>\n")
		for _, m := range recent {
			text := strings.TrimSpace(m.Text)
			if text == "" {
				continue
			}
			speaker := "AGENT"
			if m.Role == RoleUser {
				speaker = "LEAD"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, text)
		}
		b.WriteString("</conversation_history>\n\n")
	}
	b.WriteString("<new_message>\n")
	b.WriteString(strings.TrimSpace(inbound))
	b.WriteString("\n</new_message>")
	return b.String()
}
