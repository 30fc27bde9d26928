package salesagent

import "strings"

// Tunables are the cadence and gating constants of the assembler. They are tuned heuristics,
// not derived values; zero fields take the defaults.
type Tunables struct {
	// The closing signal fires only when the lead's last sentiment exceeds ClosingSentimentMin,
	// the stored pleasure exceeds ClosingPleasureMin and the history holds more than
	// ClosingMinHistory messages.
	ClosingSentimentMin float64
	ClosingPleasureMin  float64
	ClosingMinHistory   int

	// The persona refresh fires at RefreshFirstTurn and every RefreshEvery turns after it.
	RefreshFirstTurn int
	RefreshEvery     int

	// Node directives up to this many runes are echoed in the override objective; longer ones
	// are referred to generically.
	DirectiveEchoMaxRunes int
}

func DefaultTunables() Tunables {
	return Tunables{
		ClosingSentimentMin:   0.8,
		ClosingPleasureMin:    0.8,
		ClosingMinHistory:     2,
		RefreshFirstTurn:      6,
		RefreshEvery:          4,
		DirectiveEchoMaxRunes: 10,
	}
}

func (t Tunables) withDefaults() Tunables {
	d := DefaultTunables()
	if t.ClosingSentimentMin <= 0 {
		t.ClosingSentimentMin = d.ClosingSentimentMin
	}
	if t.ClosingPleasureMin <= 0 {
		t.ClosingPleasureMin = d.ClosingPleasureMin
	}
	if t.ClosingMinHistory <= 0 {
		t.ClosingMinHistory = d.ClosingMinHistory
	}
	if t.RefreshFirstTurn <= 0 {
		t.RefreshFirstTurn = d.RefreshFirstTurn
	}
	if t.RefreshEvery <= 0 {
		t.RefreshEvery = d.RefreshEvery
	}
	if t.DirectiveEchoMaxRunes <= 0 {
		t.DirectiveEchoMaxRunes = d.DirectiveEchoMaxRunes
	}
	return t
}

// Assembler builds system prompts. It holds no mutable state and is safe for concurrent use.
type Assembler struct {
	tun Tunables
}

func NewAssembler(t Tunables) *Assembler {
	return &Assembler{tun: t.withDefaults()}
}

func (a *Assembler) Tunables() Tunables {
	return a.tun
}

var defaultAssembler = NewAssembler(DefaultTunables())

// BuildSystemPrompt assembles the system prompt with the default tunables.
func BuildSystemPrompt(agent *AgentConfig, cc *ConversationContext, emotionalAdjustment string, node *NodeConfig, securityToken string, turnCount int) string {
	return defaultAssembler.Build(agent, cc, emotionalAdjustment, node, securityToken, turnCount)
}

// Build assembles the system prompt layers in fixed order: security, identity, business
// context, persona refresh, node objectives, style, interaction heuristics, tools and the
// critical override. Empty layers are omitted; layers are separated by one blank line.
// Missing optional inputs shorten the prompt and never fail it. Output depends only on the
// inputs.
func (a *Assembler) Build(agent *AgentConfig, cc *ConversationContext, emotionalAdjustment string, node *NodeConfig, securityToken string, turnCount int) string {
	if agent == nil {
		agent = &AgentConfig{}
	}
	if cc == nil {
		cc = &ConversationContext{}
	}

	layers := []string{
		securityLayer(securityToken),
		identityLayer(agent, cc),
		a.contextLayer(agent, cc, emotionalAdjustment, node),
		a.refreshLayer(agent, turnCount),
		objectivesLayer(node, cc),
		styleLayer(agent),
		heuristicsLayer,
		toolsLayer(agent.Tools),
		a.overrideLayer(cc, node),
	}
	return joinBlocks(layers, "\n\n")
}

// RefreshDue reports whether the persona-refresh layer is emitted at turn.
func (a *Assembler) RefreshDue(turn int) bool {
	first, every := a.tun.RefreshFirstTurn, a.tun.RefreshEvery
	return turn == first || (turn > first && (turn-first)%every == 0)
}

// ClosingSignalDue reports whether the context warrants pushing toward the node goal now.
func (a *Assembler) ClosingSignalDue(cc *ConversationContext) bool {
	if cc == nil || cc.Lead == nil || cc.Lead.LastSentiment == nil || cc.Lead.EmotionalState == nil {
		return false
	}
	return *cc.Lead.LastSentiment > a.tun.ClosingSentimentMin &&
		cc.Lead.EmotionalState.Pleasure > a.tun.ClosingPleasureMin &&
		len(cc.History) > a.tun.ClosingMinHistory
}

func joinBlocks(blocks []string, sep string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, sep)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		if it = strings.TrimSpace(it); it == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(it)
	}
	return b.String()
}
