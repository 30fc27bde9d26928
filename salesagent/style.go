package salesagent

import "github.com/theimaginaryfoundation/axis-agent/salesagent/dna"

// Emoji policies, from most to least restrictive.
const (
	EmojiForbidden = "forbidden"
	EmojiMinimal   = "minimal: at most one emoji every few messages, never on serious topics"
	EmojiModerate  = "moderate: at most one emoji per message, only when it fits the mood"
	EmojiFrequent  = "frequent: use emojis naturally to show warmth and energy, up to two per message"
)

// EmojiPolicy derives the emoji rule. Priority: emojis disabled, corporate reduction profile,
// low extraversion, then frequency by extraversion (unset counts as MEDIUM).
func EmojiPolicy(agent *AgentConfig) string {
	switch {
	case agent.emojisDisabled():
		return EmojiForbidden
	case agent.reductionProfile() == dna.ReductionCorporate:
		return EmojiMinimal
	case agent.extraversion() == dna.LevelLow:
		return EmojiMinimal
	case agent.extraversion() == dna.LevelHigh:
		return EmojiFrequent
	default:
		return EmojiModerate
	}
}

func styleLayer(agent *AgentConfig) string {
	d := agent.dnaConfig()
	var blocks []string
	add := func(text string, ok bool) {
		if ok {
			blocks = append(blocks, text)
		}
	}

	for _, axis := range dna.BigFiveOrder {
		add(dna.Psychometric(axis, d.Psychometrics.Level(axis)))
	}
	if pad := d.PADBaseline; pad != nil {
		add(dna.PADPleasure(pad.Pleasure))
		add(dna.PADArousal(pad.Arousal))
		add(dna.PADDominance(pad.Dominance))
	}
	if l := d.Linguistics; l != nil {
		add(dna.Caps(l.CapsMode))
		add(dna.Reduction(l.ReductionProfile))
		add(dna.Typo(l.TypoInjection))
		add(dna.Correction(l.CorrectionStyle))
	}
	if c := d.Chronemics; c != nil {
		add(dna.Burst(c.Burstiness))
		add(dna.Latency(c.LatencyProfile))
	}
	blocks = append(blocks, "Emoji policy: "+EmojiPolicy(agent), bannedHabits)

	return "### STYLE\n" + joinBlocks(blocks, "\n\n")
}

const bannedHabits = `Never do any of these:
- Stock openers such as "Espero que esteja bem", "Como posso ajudar?" or "Olá, tudo bem?" repeated in every message.
- Stock closers such as "Qualquer dúvida estou à disposição", "Fico no aguardo" or "Abraços" in every message.
- Call-center boilerplate such as "Obrigado por entrar em contato" or "Sua mensagem é muito importante para nós".
- Bullet lists, numbered lists, headings or tables in your messages.
- Bold or italics with asterisks or underscores.
- Long paragraphs. WhatsApp messages are short.`
