package salesagent

import "strings"

// Goal is the objective of the current workflow node.
type Goal string

const (
	GoalQualifyLead     Goal = "QUALIFY_LEAD"
	GoalCloseSale       Goal = "CLOSE_SALE"
	GoalScheduleMeeting Goal = "SCHEDULE_MEETING"
	GoalHandleObjection Goal = "HANDLE_OBJECTION"
	GoalProvideInfo     Goal = "PROVIDE_INFO"
	GoalRecoverCold     Goal = "RECOVER_COLD"
	GoalOnboardUser     Goal = "ONBOARD_USER"
	GoalSupportTicket   Goal = "SUPPORT_TICKET"
	GoalCustom          Goal = "CUSTOM"
)

// CTA is a call to action the agent may steer toward.
type CTA string

const (
	CTAScheduleCall    CTA = "SCHEDULE_CALL"
	CTABookDemo        CTA = "BOOK_DEMO"
	CTASendProposal    CTA = "SEND_PROPOSAL"
	CTASendPaymentLink CTA = "SEND_PAYMENT_LINK"
	CTASendMaterial    CTA = "SEND_MATERIAL"
	CTAVisitStore      CTA = "VISIT_STORE"
	CTATransferHuman   CTA = "TRANSFER_TO_HUMAN"
	CTARequestReferral CTA = "REQUEST_REFERRAL"
)

// SlotType is the value type a critical slot must hold.
type SlotType string

const (
	SlotString  SlotType = "string"
	SlotNumber  SlotType = "number"
	SlotBoolean SlotType = "boolean"
	SlotEnum    SlotType = "enum"
)

// CriticalSlot is a named fact the node must extract. Options is only used by enum slots.
type CriticalSlot struct {
	Name        string   `json:"name"`
	Type        SlotType `json:"type,omitempty"`
	Options     []string `json:"options,omitempty"`
	Description string   `json:"description,omitempty"`
}

// NodeConfig is the objective configuration of one workflow node.
type NodeConfig struct {
	Goal          Goal           `json:"goal,omitempty"`
	CustomGoal    string         `json:"custom_goal,omitempty"`
	RequiredSlots []CriticalSlot `json:"required_slots,omitempty"`
	AllowedCTAs   []CTA          `json:"allowed_ctas,omitempty"`
	MicroGoals    []string       `json:"micro_goals,omitempty"`
	ClosingCTA    string         `json:"closing_cta,omitempty"`
}

// unfilledSlots returns the required slots the lead has not filled yet, in declaration order.
func (n *NodeConfig) unfilledSlots(lead *Lead) []CriticalSlot {
	if n == nil {
		return nil
	}
	var out []CriticalSlot
	for _, s := range n.RequiredSlots {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		if !lead.SlotFilled(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func ParseGoal(s string) (Goal, bool) {
	switch normalizeToken(s) {
	case "QUALIFY_LEAD", "QUALIFY", "QUALIFICAR":
		return GoalQualifyLead, true
	case "CLOSE_SALE", "CLOSE", "FECHAR_VENDA":
		return GoalCloseSale, true
	case "SCHEDULE_MEETING", "SCHEDULE", "AGENDAR", "AGENDAR_REUNIAO":
		return GoalScheduleMeeting, true
	case "HANDLE_OBJECTION", "OBJECTION", "CONTORNAR_OBJECAO":
		return GoalHandleObjection, true
	case "PROVIDE_INFO", "INFO", "INFORMAR":
		return GoalProvideInfo, true
	case "RECOVER_COLD", "RECOVER", "REATIVAR":
		return GoalRecoverCold, true
	case "ONBOARD_USER", "ONBOARDING":
		return GoalOnboardUser, true
	case "SUPPORT_TICKET", "SUPPORT", "SUPORTE":
		return GoalSupportTicket, true
	case "CUSTOM", "PERSONALIZADO":
		return GoalCustom, true
	}
	return "", false
}

func ParseCTA(s string) (CTA, bool) {
	switch normalizeToken(s) {
	case "SCHEDULE_CALL", "CALL", "LIGACAO":
		return CTAScheduleCall, true
	case "BOOK_DEMO", "DEMO":
		return CTABookDemo, true
	case "SEND_PROPOSAL", "PROPOSAL", "PROPOSTA":
		return CTASendProposal, true
	case "SEND_PAYMENT_LINK", "PAYMENT_LINK", "CHECKOUT", "PAGAMENTO":
		return CTASendPaymentLink, true
	case "SEND_MATERIAL", "MATERIAL":
		return CTASendMaterial, true
	case "VISIT_STORE", "VISIT", "VISITA":
		return CTAVisitStore, true
	case "TRANSFER_TO_HUMAN", "HANDOFF", "HUMAN":
		return CTATransferHuman, true
	case "REQUEST_REFERRAL", "REFERRAL", "INDICACAO":
		return CTARequestReferral, true
	}
	return "", false
}

func ParseSlotType(s string) (SlotType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "text", "texto":
		return SlotString, true
	case "number", "numeric", "integer", "int", "float", "numero":
		return SlotNumber, true
	case "boolean", "bool":
		return SlotBoolean, true
	case "enum", "select", "choice", "options":
		return SlotEnum, true
	}
	return "", false
}

func ParseScope(s string) (ScopePolicy, bool) {
	switch normalizeToken(s) {
	case "READ_ONLY", "READONLY", "READ", "LEITURA":
		return ScopeReadOnly, true
	case "WRITE", "READ_WRITE", "ESCRITA":
		return ScopeWrite, true
	}
	return "", false
}

var tokenFolder = strings.NewReplacer(
	"-", "_", " ", "_",
	"Á", "A", "Â", "A", "Ã", "A", "É", "E", "Ê", "E", "Í", "I",
	"Ó", "O", "Ô", "O", "Õ", "O", "Ú", "U", "Ç", "C",
)

func normalizeToken(s string) string {
	return tokenFolder.Replace(strings.ToUpper(strings.TrimSpace(s)))
}
