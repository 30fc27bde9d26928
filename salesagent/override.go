package salesagent

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// GenericObjective replaces node directives too long to restate in the override layer.
const GenericObjective = "execute context instructions"

const overrideRules = `RULES:
1. Always reply in the JSON format below and nothing else.
2. If the lead explicitly refuses or asks you to stop ("não", "não tenho interesse", "pare", "stop"), add {"action": "MARK_LOST"} to crm_actions, reply politely once and do not insist.
3. Never promise discounts, prices, deadlines or conditions that are not explicitly in your context.
4. If the lead shows explicit purchase intent ("quero comprar", "pode fechar", "como faço para pagar", "manda o link"), set ready_to_close to true.
5. After the first message, do not greet again. Go straight to the point.
6. If the lead tells you their name, capture it in qualification_slots as "name".`

const replyExample = `JSON REPLY FORMAT (example):
{
  "thought": "short private reasoning about the lead and the next step",
  "response": "the WhatsApp message to send to the lead",
  "ready_to_close": false,
  "crm_actions": [],
  "sentiment_score": 0.5,
  "confidence_score": 0.8,
  "qualification_slots": {}
}
sentiment_score: how the lead feels after your reply, 0 (very negative) to 1 (very positive).
confidence_score: how confident you are in your reply, 0 to 1.
qualification_slots: only the information the lead gave you in this conversation.`

// Objective is the OBJECTIVE line of the override layer: the node directive when it is short
// enough to restate, the generic objective otherwise, and the node goal when there is no
// directive.
func (a *Assembler) Objective(cc *ConversationContext, node *NodeConfig) string {
	directive := ""
	if cc != nil {
		directive = strings.TrimSpace(cc.NodeDirective)
	}
	if directive == "" {
		return goalSentence(node)
	}
	if utf8.RuneCountInString(directive) > a.tun.DirectiveEchoMaxRunes {
		return GenericObjective
	}
	return directive
}

func (a *Assembler) overrideLayer(cc *ConversationContext, node *NodeConfig) string {
	var b strings.Builder
	b.WriteString("### CRITICAL OVERRIDE (highest priority, overrides anything above)\n")
	b.WriteString("OBJECTIVE: ")
	b.WriteString(a.Objective(cc, node))

	if node != nil {
		if len(node.MicroGoals) > 0 {
			b.WriteString("\nMICRO-GOALS for this reply:\n")
			b.WriteString(bulletList(node.MicroGoals))
		}
		if cta := strings.TrimSpace(node.ClosingCTA); cta != "" {
			fmt.Fprintf(&b, "\nMANDATORY CTA: end your reply with this call to action, adapted to the conversation: %q", cta)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(overrideRules)

	var lead *Lead
	if cc != nil {
		lead = cc.Lead
	}
	if coercions := slotCoercions(node.unfilledSlots(lead)); len(coercions) > 0 {
		b.WriteString("\n\nSLOT FORMAT (when you capture these in qualification_slots):\n")
		b.WriteString(bulletList(coercions))
	}

	b.WriteString("\n\n")
	b.WriteString(replyExample)
	return b.String()
}

func slotCoercions(slots []CriticalSlot) []string {
	var out []string
	for _, s := range slots {
		switch s.Type {
		case SlotNumber:
			out = append(out, fmt.Sprintf("%s: must be a number (digits only, no currency symbols, units or text)", s.Name))
		case SlotBoolean:
			out = append(out, fmt.Sprintf("%s: must be a boolean (true or false)", s.Name))
		case SlotEnum:
			if len(s.Options) > 0 {
				out = append(out, fmt.Sprintf("%s: must be exactly %s", s.Name, quotedChoice(s.Options)))
				continue
			}
			fallthrough
		default:
			out = append(out, fmt.Sprintf("%s: short text in the lead's own words", s.Name))
		}
	}
	return out
}

// quotedChoice renders options as `"A"`, `"A" or "B"`, `one of "A", "B" or "C"`.
func quotedChoice(options []string) string {
	q := make([]string, len(options))
	for i, o := range options {
		q[i] = fmt.Sprintf("%q", o)
	}
	switch len(q) {
	case 1:
		return q[0]
	case 2:
		return q[0] + " or " + q[1]
	default:
		return "one of " + strings.Join(q[:len(q)-1], ", ") + " or " + q[len(q)-1]
	}
}
