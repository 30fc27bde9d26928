package salesagent

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/dna"
)

// ParseAgentConfig turns a tenant's loosely typed agent record (JSON) into an AgentConfig.
// It accepts snake_case and camelCase keys, comma-separated strings where lists are expected,
// and the DNA block either inline or as an embedded JSON string. Unrecognized enum values are
// reported as warnings and left unset. Only malformed JSON is an error.
func ParseAgentConfig(data []byte) (AgentConfig, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return AgentConfig{}, nil, fmt.Errorf("ParseAgentConfig: decode: %w", err)
	}
	p := &parser{}
	cfg := p.agent(m)
	return cfg, p.warnings, nil
}

// LoadAgentConfigFile reads an agent record from a .json, .yaml or .yml file.
func LoadAgentConfigFile(path string) (AgentConfig, []string, error) {
	data, err := readDocument(path)
	if err != nil {
		return AgentConfig{}, nil, fmt.Errorf("LoadAgentConfigFile: %w", err)
	}
	cfg, warnings, err := ParseAgentConfig(data)
	if err != nil {
		return AgentConfig{}, nil, fmt.Errorf("LoadAgentConfigFile: %s: %w", path, err)
	}
	return cfg, warnings, nil
}

// ParseNodeConfig decodes a workflow node's objective configuration.
func ParseNodeConfig(data []byte) (NodeConfig, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return NodeConfig{}, nil, fmt.Errorf("ParseNodeConfig: decode: %w", err)
	}
	p := &parser{}
	cfg := p.node(m)
	return cfg, p.warnings, nil
}

func LoadNodeConfigFile(path string) (NodeConfig, []string, error) {
	data, err := readDocument(path)
	if err != nil {
		return NodeConfig{}, nil, fmt.Errorf("LoadNodeConfigFile: %w", err)
	}
	cfg, warnings, err := ParseNodeConfig(data)
	if err != nil {
		return NodeConfig{}, nil, fmt.Errorf("LoadNodeConfigFile: %s: %w", path, err)
	}
	return cfg, warnings, nil
}

// ParseContext decodes a ConversationContext. An unknown scope falls back to READ_ONLY.
func ParseContext(data []byte) (ConversationContext, error) {
	var cc ConversationContext
	if err := json.Unmarshal(data, &cc); err != nil {
		return ConversationContext{}, fmt.Errorf("ParseContext: decode: %w", err)
	}
	if s, ok := ParseScope(string(cc.Scope)); ok {
		cc.Scope = s
	} else {
		cc.Scope = ScopeReadOnly
	}
	return cc, nil
}

func LoadContextFile(path string) (ConversationContext, error) {
	data, err := readDocument(path)
	if err != nil {
		return ConversationContext{}, fmt.Errorf("LoadContextFile: %w", err)
	}
	cc, err := ParseContext(data)
	if err != nil {
		return ConversationContext{}, fmt.Errorf("LoadContextFile: %s: %w", path, err)
	}
	return cc, nil
}

// readDocument returns the file as JSON, converting YAML by extension.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml %s: %w", path, err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml %s: %w", path, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

type parser struct {
	warnings []string
}

func (p *parser) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *parser) agent(m map[string]any) AgentConfig {
	cfg := AgentConfig{
		ID:          str(m, "id"),
		Name:        str(m, "name"),
		JobTitle:    str(m, "job_title", "jobTitle", "title"),
		Role:        parseEnum(p, m, "role", dna.ParseRole, "role"),
		Company:     str(m, "company", "company_name", "companyName"),
		Tone:        strList(m, "tone", "tone_descriptors", "toneDescriptors"),
		Personality: str(m, "personality"),
		Language:    str(m, "language", "lang"),
		Product:     str(m, "product", "product_description", "productDescription"),
		Methodology: parseEnum(p, m, "methodology", dna.ParseMethodology, "methodology", "sales_methodology", "salesMethodology", "framework"),
	}
	if cfg.Name == "" {
		p.warnf("name: missing")
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if d := obj(m, "dna", "dna_config", "dnaConfig"); d != nil {
		cfg.DNA = p.dnaConfig(d)
	}
	cfg.ICP = p.icp(m)
	cfg.Objections = NormalizeObjections(p.objections(list(m, "objections", "objection_handling", "objectionHandling")))
	if s := obj(m, "sliders", "tone_sliders", "toneSliders"); s != nil {
		cfg.Sliders = &ToneSliders{
			Formality:  p.slider(s, "sliders.formality", "formality"),
			Humor:      p.slider(s, "sliders.humor", "humor"),
			Enthusiasm: p.slider(s, "sliders.enthusiasm", "enthusiasm"),
		}
	}
	cfg.Tools = p.tools(list(m, "tools", "custom_tools", "customTools"))
	return cfg
}

func (p *parser) dnaConfig(m map[string]any) *DNAConfig {
	out := &DNAConfig{}
	if g := obj(m, "psychometrics", "big_five", "bigFive"); g != nil {
		out.Psychometrics = &Psychometrics{
			Openness:          parseEnum(p, g, "psychometrics.openness", dna.ParseLevel, "openness"),
			Conscientiousness: parseEnum(p, g, "psychometrics.conscientiousness", dna.ParseLevel, "conscientiousness"),
			Extraversion:      parseEnum(p, g, "psychometrics.extraversion", dna.ParseLevel, "extraversion"),
			Agreeableness:     parseEnum(p, g, "psychometrics.agreeableness", dna.ParseLevel, "agreeableness"),
			Neuroticism:       parseEnum(p, g, "psychometrics.neuroticism", dna.ParseLevel, "neuroticism"),
		}
	}
	if g := obj(m, "pad_baseline", "padBaseline", "pad"); g != nil {
		out.PADBaseline = &PADBaseline{
			Pleasure:  parseEnum(p, g, "pad_baseline.pleasure", dna.ParsePleasure, "pleasure"),
			Arousal:   parseEnum(p, g, "pad_baseline.arousal", dna.ParseLevel, "arousal"),
			Dominance: parseEnum(p, g, "pad_baseline.dominance", dna.ParseDominance, "dominance"),
		}
	}
	if g := obj(m, "linguistics"); g != nil {
		out.Linguistics = &Linguistics{
			CapsMode:         parseEnum(p, g, "linguistics.caps_mode", dna.ParseCapsMode, "caps_mode", "capsMode"),
			ReductionProfile: parseEnum(p, g, "linguistics.reduction_profile", dna.ParseReductionProfile, "reduction_profile", "reductionProfile"),
			TypoInjection:    parseEnum(p, g, "linguistics.typo_injection", dna.ParseTypoLevel, "typo_injection", "typoInjection"),
			CorrectionStyle:  parseEnum(p, g, "linguistics.correction_style", dna.ParseCorrectionStyle, "correction_style", "correctionStyle"),
		}
	}
	if g := obj(m, "chronemics"); g != nil {
		out.Chronemics = &Chronemics{
			LatencyProfile: parseEnum(p, g, "chronemics.latency_profile", dna.ParseLatencyProfile, "latency_profile", "latencyProfile"),
			Burstiness:     parseEnum(p, g, "chronemics.burstiness", dna.ParseLevel, "burstiness"),
		}
	}
	if g := obj(m, "brand_voice", "brandVoice"); g != nil {
		out.BrandVoice = &BrandVoice{
			ProhibitedWords: strList(g, "prohibited_words", "prohibitedWords", "forbidden_words", "forbiddenWords"),
			EmojisAllowed:   p.boolPtr(g, "brand_voice.emojis_allowed", "emojis_allowed", "emojisAllowed", "use_emojis", "useEmojis"),
		}
	}
	if g := obj(m, "compliance"); g != nil {
		out.Compliance = &Compliance{Rules: strList(g, "rules")}
	} else if rules := strList(m, "compliance"); len(rules) > 0 {
		out.Compliance = &Compliance{Rules: rules}
	}
	return out
}

func (p *parser) icp(m map[string]any) *ICP {
	if g := obj(m, "icp", "ideal_customer_profile", "idealCustomerProfile"); g != nil {
		icp := &ICP{
			Segment:       str(g, "segment", "industry"),
			CompanySize:   str(g, "company_size", "companySize", "size"),
			DecisionMaker: str(g, "decision_maker", "decisionMaker", "persona"),
			Pains:         strList(g, "pains", "pain_points", "painPoints"),
		}
		if icp.empty() {
			return nil
		}
		return icp
	}
	if s := str(m, "icp"); s != "" {
		return &ICP{Segment: s}
	}
	return nil
}

func (p *parser) objections(items []any) []Objection {
	var out []Objection
	for i, it := range items {
		g, ok := it.(map[string]any)
		if !ok {
			p.warnf("objections[%d]: expected an object", i)
			continue
		}
		o := Objection{
			Trigger:  str(g, "trigger", "objection", "question"),
			Response: str(g, "response", "answer", "reply"),
		}
		if o.Trigger == "" || o.Response == "" {
			p.warnf("objections[%d]: trigger and response are both required", i)
			continue
		}
		out = append(out, o)
	}
	return out
}

func (p *parser) tools(items []any) []CustomTool {
	var out []CustomTool
	for i, it := range items {
		g, ok := it.(map[string]any)
		if !ok {
			p.warnf("tools[%d]: expected an object", i)
			continue
		}
		t := CustomTool{
			Name:        str(g, "name"),
			Method:      strings.ToUpper(str(g, "method")),
			URL:         str(g, "url", "endpoint"),
			Description: str(g, "description"),
			Parameters:  strList(g, "parameters", "params"),
		}
		if t.Name == "" {
			p.warnf("tools[%d]: missing name", i)
			continue
		}
		out = append(out, t)
	}
	return out
}

func (p *parser) node(m map[string]any) NodeConfig {
	cfg := NodeConfig{
		Goal:       parseEnum(p, m, "goal", ParseGoal, "goal", "objective"),
		CustomGoal: str(m, "custom_goal", "customGoal"),
		MicroGoals: strList(m, "micro_goals", "microGoals"),
		ClosingCTA: str(m, "closing_cta", "closingCta", "mandatory_cta"),
	}
	for i, it := range list(m, "required_slots", "requiredSlots", "critical_slots", "criticalSlots", "slots") {
		switch v := it.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				cfg.RequiredSlots = append(cfg.RequiredSlots, CriticalSlot{Name: name, Type: SlotString})
			}
		case map[string]any:
			if slot, ok := p.slot(i, v); ok {
				cfg.RequiredSlots = append(cfg.RequiredSlots, slot)
			}
		default:
			p.warnf("required_slots[%d]: expected a name or an object", i)
		}
	}
	for _, raw := range strList(m, "allowed_ctas", "allowedCtas", "allowedCTAs", "ctas") {
		cta, ok := ParseCTA(raw)
		if !ok {
			p.warnf("allowed_ctas: unknown value %q ignored", raw)
			continue
		}
		cfg.AllowedCTAs = append(cfg.AllowedCTAs, cta)
	}
	return cfg
}

func (p *parser) slot(i int, m map[string]any) (CriticalSlot, bool) {
	slot := CriticalSlot{
		Name:        str(m, "name", "key"),
		Options:     strList(m, "options", "values"),
		Description: str(m, "description"),
	}
	if slot.Name == "" {
		p.warnf("required_slots[%d]: missing name", i)
		return CriticalSlot{}, false
	}
	rawType := str(m, "type")
	t, ok := ParseSlotType(rawType)
	if !ok {
		p.warnf("required_slots[%d].type: unknown value %q, using string", i, rawType)
		t = SlotString
	}
	if t == SlotEnum && len(slot.Options) == 0 {
		p.warnf("required_slots[%d]: enum slot %q has no options, using string", i, slot.Name)
		t = SlotString
	}
	if t != SlotEnum {
		slot.Options = nil
	}
	slot.Type = t
	return slot, true
}

func (p *parser) slider(m map[string]any, field string, keys ...string) *int {
	v, ok := first(m, keys...)
	if !ok || v == nil {
		return nil
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			p.warnf("%s: not a number %q", field, x)
			return nil
		}
		f = parsed
	default:
		p.warnf("%s: not a number", field)
		return nil
	}
	n := int(math.Round(f))
	if n < 0 || n > SliderMax {
		p.warnf("%s: %d clamped to 0..%d", field, n, SliderMax)
		n = min(max(n, 0), SliderMax)
	}
	return &n
}

func (p *parser) boolPtr(m map[string]any, field string, keys ...string) *bool {
	v, ok := first(m, keys...)
	if !ok || v == nil {
		return nil
	}
	var b bool
	switch x := v.(type) {
	case bool:
		b = x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "sim", "on", "1":
			b = true
		case "false", "no", "nao", "não", "off", "0":
			b = false
		default:
			p.warnf("%s: not a boolean %q", field, x)
			return nil
		}
	default:
		p.warnf("%s: not a boolean", field)
		return nil
	}
	return &b
}

func parseEnum[T ~string](p *parser, m map[string]any, field string, parse func(string) (T, bool), keys ...string) T {
	var zero T
	raw := str(m, keys...)
	if raw == "" {
		return zero
	}
	v, ok := parse(raw)
	if !ok {
		p.warnf("%s: unknown value %q ignored", field, raw)
		return zero
	}
	return v
}

func first(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func str(m map[string]any, keys ...string) string {
	v, ok := first(m, keys...)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// obj returns a nested object. A string value holding a JSON object is decoded too, since
// some records store the DNA block as serialized text.
func obj(m map[string]any, keys ...string) map[string]any {
	v, ok := first(m, keys...)
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case map[string]any:
		return x
	case string:
		s := strings.TrimSpace(x)
		if !strings.HasPrefix(s, "{") {
			return nil
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}

func list(m map[string]any, keys ...string) []any {
	v, ok := first(m, keys...)
	if !ok {
		return nil
	}
	if x, ok := v.([]any); ok {
		return x
	}
	return nil
}

// strList accepts a JSON array of scalars or one comma-separated string.
func strList(m map[string]any, keys ...string) []string {
	v, ok := first(m, keys...)
	if !ok {
		return nil
	}
	var raw []string
	switch x := v.(type) {
	case string:
		raw = strings.Split(x, ",")
	case []any:
		for _, it := range x {
			switch s := it.(type) {
			case string:
				raw = append(raw, s)
			case float64:
				raw = append(raw, strconv.FormatFloat(s, 'f', -1, 64))
			}
		}
	}
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
