package salesagent

import (
	"fmt"
	"strings"
)

var goalInstructions = map[Goal]string{
	GoalQualifyLead:     "Qualify the lead: find out their need, timing, budget and who decides, one question at a time.",
	GoalCloseSale:       "Close the sale: confirm the offer, handle the last doubts and guide the lead to payment or signature.",
	GoalScheduleMeeting: "Schedule a meeting: propose two concrete time options and confirm date, time and channel.",
	GoalHandleObjection: "Handle the objection: understand the real concern, answer it with facts and check if it is resolved.",
	GoalProvideInfo:     "Provide information: answer the lead's questions clearly and accurately, using only facts from your context.",
	GoalRecoverCold:     "Re-engage a cold lead: reopen the conversation with something relevant and low-pressure, and find out if the interest is still there.",
	GoalOnboardUser:     "Onboard the customer: welcome them, explain the first steps and make sure they complete the first one.",
	GoalSupportTicket:   "Solve the support request: understand the problem, guide the fix step by step and confirm it is solved.",
}

var ctaInstructions = map[CTA]string{
	CTAScheduleCall:    "invite the lead to a short call and propose concrete times",
	CTABookDemo:        "offer a demo of the product and propose concrete times",
	CTASendProposal:    "offer to send a formal proposal and confirm where to send it",
	CTASendPaymentLink: "offer the payment link so the lead can buy right away",
	CTASendMaterial:    "offer to send material (catalog, presentation or video) about the product",
	CTAVisitStore:      "invite the lead to visit the store or office and confirm the address and a time",
	CTATransferHuman:   "offer to connect the lead with a specialist from the team",
	CTARequestReferral: "ask if the lead knows someone else who could benefit",
}

// goalSentence translates the node goal into one instruction sentence.
func goalSentence(node *NodeConfig) string {
	if node == nil {
		return "Move the conversation toward the next concrete step."
	}
	if node.Goal == GoalCustom {
		if g := strings.TrimSpace(node.CustomGoal); g != "" {
			return "Custom goal: " + strings.TrimSuffix(g, ".") + "."
		}
		return "Follow the custom objective described in the playbook."
	}
	if s, ok := goalInstructions[node.Goal]; ok {
		return s
	}
	return "Move the conversation toward the next concrete step."
}

func objectivesLayer(node *NodeConfig, cc *ConversationContext) string {
	if node == nil {
		return ""
	}
	var required []string
	for _, s := range node.RequiredSlots {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		required = append(required, slotLabel(s))
	}
	generic := node.Goal == "" || node.Goal == GoalProvideInfo
	if generic && len(required) == 0 && len(node.AllowedCTAs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("### CURRENT OBJECTIVE\n")
	b.WriteString("Goal: ")
	b.WriteString(goalSentence(node))

	if len(required) > 0 {
		fmt.Fprintf(&b, "\nRequired information: %s.", strings.Join(required, ", "))

		missing := node.unfilledSlots(cc.Lead)
		if len(missing) == 0 {
			b.WriteString("\nAll required information has already been collected.")
		} else {
			names := make([]string, 0, len(missing))
			for _, s := range missing {
				names = append(names, s.Name)
			}
			fmt.Fprintf(&b, "\nStill missing: %s. Collect it naturally, one item at a time.", strings.Join(names, ", "))
		}
	}

	if len(node.AllowedCTAs) > 0 {
		var lines []string
		for _, c := range node.AllowedCTAs {
			text, ok := ctaInstructions[c]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", c, text))
		}
		if len(lines) > 0 {
			b.WriteString("\nAllowed calls to action (use only these):\n")
			b.WriteString(bulletList(lines))
		}
	}

	b.WriteString("\nCompletion rule: if all required information is collected or the lead agreed to the next step, finalize now: confirm, set ready_to_close to true and ask no more questions.")
	b.WriteString("\nNever emit a tool call and ready_to_close=true in the same reply.")
	return b.String()
}

func slotLabel(s CriticalSlot) string {
	t := s.Type
	if t == "" {
		t = SlotString
	}
	label := fmt.Sprintf("%s (%s", s.Name, t)
	if t == SlotEnum && len(s.Options) > 0 {
		label += ": " + strings.Join(s.Options, "/")
	}
	label += ")"
	if s.Description != "" {
		label += " " + s.Description
	}
	return label
}
