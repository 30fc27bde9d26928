package salesagent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/dna"
)

var markupTag = regexp.MustCompile(`<[A-Za-z][A-Za-z0-9_-]*(\s[^>]*)?>`)

// verticals holds industry-specific addenda keyed by normalized industry tag.
var verticals = map[string]string{
	"legal":       `INDUSTRY NOTE (LEGAL): Never give legal advice or predict case outcomes. Say that each case needs analysis by a lawyer and offer a consultation. Do not ask for documents or case details over WhatsApp beyond what is needed to schedule.`,
	"auto_repair": `INDUSTRY NOTE (AUTO REPAIR): Never diagnose a fault or promise a price without an inspection. If the lead describes brake, steering or overheating problems, advise them not to drive the vehicle and offer towing or the earliest inspection slot.`,
	"health":      `INDUSTRY NOTE (HEALTH): Never diagnose, prescribe or promise clinical results. For urgent symptoms, tell the lead to seek emergency care immediately. Only share information about services, schedules and prices.`,
	"real_estate": `INDUSTRY NOTE (REAL ESTATE): Do not promise financing approval or appreciation. Confirm availability before offering a visit, and always mention that values and conditions may change.`,
	"finance":     `INDUSTRY NOTE (FINANCE): Never promise returns, approval or rates that are not in your context. Mention that credit is subject to analysis. Never ask for passwords or full card numbers.`,
	"education":   `INDUSTRY NOTE (EDUCATION): Do not guarantee approval, jobs or certifications beyond what the course officially offers. Confirm class dates and enrollment deadlines from your context only.`,
}

var verticalAliases = map[string]string{
	"law":         "legal",
	"juridico":    "legal",
	"advocacia":   "legal",
	"automotive":  "auto_repair",
	"oficina":     "auto_repair",
	"mecanica":    "auto_repair",
	"healthcare":  "health",
	"saude":       "health",
	"clinica":     "health",
	"imobiliaria": "real_estate",
	"realestate":  "real_estate",
	"financas":    "finance",
	"fintech":     "finance",
	"educacao":    "education",
	"cursos":      "education",
}

// VerticalAddendum returns the industry addendum for a tag, if one exists.
func VerticalAddendum(tag string) (string, bool) {
	key := strings.ToLower(normalizeToken(tag))
	if alias, ok := verticalAliases[key]; ok {
		key = alias
	}
	text, ok := verticals[key]
	return text, ok
}

func (a *Assembler) contextLayer(agent *AgentConfig, cc *ConversationContext, adjustment string, node *NodeConfig) string {
	var parts []string

	if s := businessSummary(agent, cc); s != "" {
		parts = append(parts, s)
	}
	if c := agent.dnaConfig().Compliance; c != nil && len(c.Rules) > 0 {
		parts = append(parts, "Compliance rules (mandatory):\n"+bulletList(c.Rules))
	}
	if adj := strings.TrimSpace(adjustment); adj != "" {
		parts = append(parts, adj)
	}
	parts = append(parts, scopeWarning(cc.Scope))
	if s := slidersText(agent.Sliders); s != "" {
		parts = append(parts, s)
	}
	if p := strings.TrimSpace(agent.Product); p != "" {
		parts = append(parts, "Product: "+p)
	}
	if s := icpText(agent.ICP); s != "" {
		parts = append(parts, s)
	}
	if m, ok := dna.MethodologySummary(agent.Methodology); ok {
		parts = append(parts, m)
	}
	if s := playbookText(cc.NodeDirective); s != "" {
		parts = append(parts, s)
	}
	if k := strings.TrimSpace(cc.Knowledge); k != "" {
		parts = append(parts, "Knowledge base (use only these facts for product details; if the answer is not here, say you will check and come back):\n"+k)
	}
	if s := objectionsText(agent.Objections); s != "" {
		parts = append(parts, s)
	}
	if s := leadSummary(cc.Lead); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, handoffRule)
	if a.ClosingSignalDue(cc) {
		parts = append(parts, fmt.Sprintf("CLOSING SIGNAL: The lead is very receptive right now. In this reply, push toward the goal: %s Make the concrete proposal or next step now.", goalSentence(node)))
	}
	tag := ""
	if cc.Campaign != nil {
		tag = cc.Campaign.IndustryTag
		if tag == "" {
			tag = cc.Campaign.Industry
		}
	}
	if v, ok := VerticalAddendum(tag); ok {
		parts = append(parts, v)
	}

	return "### BUSINESS CONTEXT\n" + joinBlocks(parts, "\n\n")
}

func businessSummary(agent *AgentConfig, cc *ConversationContext) string {
	var lines []string
	if company := agentCompany(agent, cc); company != "" {
		lines = append(lines, "Company: "+company)
	}
	if c := cc.Campaign; c != nil {
		if c.Industry != "" {
			lines = append(lines, "Industry: "+c.Industry)
		}
		if c.Name != "" {
			lines = append(lines, "Campaign: "+c.Name)
		}
		if c.ValueProposition != "" {
			lines = append(lines, "Value proposition: "+c.ValueProposition)
		}
	}
	return strings.Join(lines, "\n")
}

func scopeWarning(s ScopePolicy) string {
	if s.Writable() {
		return "SCOPE: WRITE. CRM write actions are permitted when the conversation justifies them."
	}
	return "SCOPE: READ_ONLY. No CRM-mutating actions allowed: do not emit UPDATE_STATUS, UPDATE_FIELD, ADD_TAG, CREATE_TASK or SCHEDULE_MEETING in crm_actions."
}

func slidersText(s *ToneSliders) string {
	if s == nil {
		return ""
	}
	var dials []string
	add := func(label string, v *int) {
		if v == nil {
			return
		}
		n := min(max(*v, 0), SliderMax)
		dials = append(dials, fmt.Sprintf("%s %d/%d", label, n, SliderMax))
	}
	add("formality", s.Formality)
	add("humor", s.Humor)
	add("enthusiasm", s.Enthusiasm)
	if len(dials) == 0 {
		return ""
	}
	return "Tone sliders (0 = none, 5 = maximum): " + strings.Join(dials, ", ") + "."
}

func icpText(icp *ICP) string {
	if icp.empty() {
		return ""
	}
	var parts []string
	if icp.Segment != "" {
		parts = append(parts, "segment "+icp.Segment)
	}
	if icp.CompanySize != "" {
		parts = append(parts, "company size "+icp.CompanySize)
	}
	if icp.DecisionMaker != "" {
		parts = append(parts, "decision maker "+icp.DecisionMaker)
	}
	if len(icp.Pains) > 0 {
		parts = append(parts, "typical pains: "+strings.Join(icp.Pains, ", "))
	}
	return "Ideal customer: " + strings.Join(parts, "; ") + "."
}

func playbookText(directive string) string {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return ""
	}
	if markupTag.MatchString(directive) {
		return "PLAYBOOK (structured script, follow these instructions literally):\n" + directive
	}
	return "PLAYBOOK (paraphrase in your own words, do not copy it verbatim):\n" + directive
}

func objectionsText(objections []Objection) string {
	var lines []string
	for _, o := range objections {
		t, r := strings.TrimSpace(o.Trigger), strings.TrimSpace(o.Response)
		if t == "" || r == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("When the lead says something like %q: %s", t, r))
	}
	if len(lines) == 0 {
		return ""
	}
	return "Objection handling (adapt the wording, keep the argument):\n" + bulletList(lines)
}

func leadSummary(l *Lead) string {
	if l == nil {
		return ""
	}
	var parts []string
	if l.Name != "" {
		parts = append(parts, "name "+l.Name)
	}
	if l.Status != "" {
		parts = append(parts, "status "+l.Status)
	}
	if slots := l.filledSlots(); len(slots) > 0 {
		parts = append(parts, "already known: "+strings.Join(slots, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Lead: " + strings.Join(parts, "; ") + ". Do not ask again for anything already known."
}

const handoffRule = `HUMAN HANDOFF: If the lead explicitly asks to talk to a human, an attendant or a manager, add {"action": "REQUEST_HUMAN"} to crm_actions and tell them someone from the team will take over.`
