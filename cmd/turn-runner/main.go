package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/theimaginaryfoundation/axis-agent/salesagent"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/appconfig"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/dna"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/fileutils"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/provider"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	var envFiles []string
	if cfg.EnvFile != "" {
		envFiles = append(envFiles, cfg.EnvFile)
	}
	app, err := appconfig.Load(envFiles...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	logger, err := appconfig.NewLogger(os.Stderr, app.LogLevel, app.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	llm := app.LLM
	if cfg.APIKey != "" {
		llm.APIKey = cfg.APIKey
	}
	if cfg.BaseURL != "" {
		llm.BaseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		llm.Model = cfg.Model
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := appconfig.OpenStore(ctx, app.Store, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer closeStore()

	var gen generator
	if !cfg.DryRun {
		client, err := provider.NewClient(llm.Provider())
		if err != nil {
			fmt.Fprintln(os.Stderr, "missing AXIS_LLM_API_KEY / GEMINI_API_KEY (or pass -api-key)")
			os.Exit(2)
		}
		gen = provider.Generator{
			Client:          client,
			Model:           llm.Model,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Schema:          replySchema,
			SchemaName:      "AIReply",
			Retry:           provider.DefaultRetryPolicy(),
			Logger:          logger,
		}
	}

	err = run(ctx, cfg, deps{
		store:  store,
		gen:    gen,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		token:  salesagent.NewSecurityToken,
	}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "turn-runner: %s\n", err.Error())
		closeStore()
		stop()
		os.Exit(1)
	}
}

var replySchema = provider.GenerateLooseSchema[salesagent.AIReply]()

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.AgentPath, "agent", cfg.AgentPath, "Agent configuration file (.json, .yaml or .yml)")
	fs.StringVar(&cfg.ContextPath, "context", cfg.ContextPath, "Conversation context file")
	fs.StringVar(&cfg.NodePath, "node", cfg.NodePath, "Workflow node objective file")
	fs.StringVar(&cfg.Message, "message", cfg.Message, "Inbound WhatsApp message from the lead")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Model name (overrides AXIS_LLM_MODEL)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "OpenAI-compatible endpoint (overrides AXIS_LLM_BASE_URL)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "API key (overrides AXIS_LLM_API_KEY / GEMINI_API_KEY)")
	fs.Int64Var(&cfg.MaxOutputTokens, "max-output-tokens", cfg.MaxOutputTokens, "Completion token limit")
	fs.IntVar(&cfg.HistoryTurns, "history-turns", cfg.HistoryTurns, "Lead-led turns of history sent in the user prompt (0 = all)")
	fs.StringVar(&cfg.TurnLogPath, "turn-log", cfg.TurnLogPath, "Append a JSONL turn record to this file")
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Optional .env file with AXIS_* settings")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the system and user prompts without calling the model or touching state")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), `  go run ./cmd/turn-runner -agent examples/agent.yaml -context examples/context.json -node examples/node.json -message "quanto custa?" -turn-log data/turns.jsonl`)
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type deps struct {
	store  emotion.Store
	gen    generator
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	token  func() string
}

// result is what the orchestrator hands to the WhatsApp sender and the CRM worker.
type result struct {
	TurnID       string             `json:"turn_id"`
	Turn         int                `json:"turn"`
	LeadKey      string             `json:"lead_key,omitempty"`
	Reply        salesagent.AIReply `json:"reply"`
	Slots        map[string]any     `json:"slots,omitempty"`
	SlotsUpdated []string           `json:"slots_updated,omitempty"`
	PAD          emotion.Vector     `json:"pad"`
	PADLabel     string             `json:"pad_label"`
	TypingDelay  typingDelay        `json:"typing_delay"`
	Warnings     []string           `json:"warnings,omitempty"`
	CanaryLeaked bool               `json:"canary_leaked,omitempty"`
}

type typingDelay struct {
	MinSeconds float64 `json:"min_seconds"`
	MaxSeconds float64 `json:"max_seconds"`
}

func run(ctx context.Context, cfg Config, d deps, stdout io.Writer) error {
	logger := d.logger
	if logger == nil {
		logger = slog.Default()
	}

	agent, warnings, err := salesagent.LoadAgentConfigFile(cfg.AgentPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn("agent config", "file", cfg.AgentPath, "warning", w)
	}
	cc := salesagent.ConversationContext{Scope: salesagent.ScopeReadOnly}
	if cfg.ContextPath != "" {
		if cc, err = salesagent.LoadContextFile(cfg.ContextPath); err != nil {
			return err
		}
	}
	var node *salesagent.NodeConfig
	if cfg.NodePath != "" {
		n, warnings, err := salesagent.LoadNodeConfigFile(cfg.NodePath)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			logger.Warn("node config", "file", cfg.NodePath, "warning", w)
		}
		node = &n
	}

	model := emotion.NewModel(d.store, emotion.WithLogger(logger))
	key := salesagent.LeadKey(&agent, &cc)
	pad := model.GetVector(ctx, key)
	if cc.Lead != nil {
		cc.Lead.EmotionalState = &pad
	}

	turn := salesagent.CountTurns(cc.History) + 1
	token := d.token()
	systemPrompt := salesagent.BuildSystemPrompt(&agent, &cc, emotion.AdjustmentText(pad), node, token, turn)
	userPrompt := salesagent.BuildUserPrompt(cc.History, cfg.Message, cfg.HistoryTurns)

	if cfg.DryRun {
		_, err := fmt.Fprintf(stdout, "=== SYSTEM PROMPT (turn %d, %d runes) ===\n%s\n\n=== USER PROMPT ===\n%s\n",
			turn, utf8.RuneCountInString(systemPrompt), systemPrompt, userPrompt)
		return err
	}
	if d.gen == nil {
		return errors.New("no model generator configured")
	}

	turnID := d.newID()
	log := logger.With("turn_id", turnID, "lead_key", key, "turn", turn)
	log.Debug("inbound", "text", fileutils.Truncate(cfg.Message, 80))

	reply, replyWarnings, err := generateReply(ctx, d.gen, systemPrompt, userPrompt, cc.Scope, log)
	if err != nil {
		return err
	}
	warnings = append([]string(nil), replyWarnings...)

	leaked := salesagent.CanaryLeaked(reply.Response, token) || salesagent.CanaryLeaked(reply.Thought, token)
	if leaked {
		log.Error("security token leaked in model reply; response withheld")
		reply.Response = canaryFallbackResponse
		reply.ReadyToClose = false
		reply.ToolCall = nil
		warnings = append(warnings, "security token leaked: response replaced")
	}

	var existing map[string]any
	if cc.Lead != nil {
		existing = cc.Lead.Slots
	}
	var declared []salesagent.CriticalSlot
	if node != nil {
		declared = node.RequiredSlots
	}
	slots, updated, slotWarnings := salesagent.MergeSlots(existing, reply.QualificationSlots, declared)
	warnings = append(warnings, slotWarnings...)

	if key != "" {
		next, err := model.Update(ctx, key, reply.SentimentScore)
		if err != nil {
			log.Warn("pad update failed", "err", err)
			warnings = append(warnings, "pad not persisted")
		} else {
			pad = next
		}
	}

	var latency dna.LatencyProfile
	if ch := agent.DNA; ch != nil && ch.Chronemics != nil {
		latency = ch.Chronemics.LatencyProfile
	}
	minDelay, maxDelay := dna.LatencyWindow(latency)

	res := result{
		TurnID:       turnID,
		Turn:         turn,
		LeadKey:      key,
		Reply:        reply,
		Slots:        slots,
		SlotsUpdated: updated,
		PAD:          pad,
		PADLabel:     pad.Label(),
		TypingDelay:  typingDelay{MinSeconds: minDelay.Seconds(), MaxSeconds: maxDelay.Seconds()},
		Warnings:     warnings,
		CanaryLeaked: leaked,
	}
	log.Info("turn complete", "pad", pad.String(), "ready_to_close", reply.ReadyToClose, "slots_updated", len(updated), "warnings", len(warnings))

	if cfg.TurnLogPath != "" {
		rec := salesagent.BuildTurnRecord(salesagent.TurnInput{
			TurnID:       turnID,
			LeadKey:      key,
			AgentID:      agent.ID,
			Turn:         turn,
			Inbound:      cfg.Message,
			Reply:        reply,
			PAD:          pad,
			SlotsUpdated: updated,
			Warnings:     warnings,
			PromptRunes:  utf8.RuneCountInString(systemPrompt),
			CanaryLeaked: leaked,
			At:           d.now(),
		})
		if err := salesagent.AppendTurnRecord(cfg.TurnLogPath, rec); err != nil {
			return err
		}
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(b))
	return err
}

// generateReply asks the model once and, if the output is not a usable reply, once more with a
// stricter reminder.
func generateReply(ctx context.Context, gen generator, systemPrompt, userPrompt string, scope salesagent.ScopePolicy, log *slog.Logger) (salesagent.AIReply, []string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		prompt := userPrompt
		if attempt == 1 {
			prompt += strictJSONReminder
		}
		text, err := gen.Generate(ctx, systemPrompt, prompt)
		if err != nil {
			return salesagent.AIReply{}, nil, fmt.Errorf("generate: %w", err)
		}
		reply, warnings, err := salesagent.ParseReply(text, scope)
		if err == nil {
			return reply, warnings, nil
		}
		lastErr = err
		log.Warn("unusable model reply", "attempt", attempt+1, "err", err)
	}
	return salesagent.AIReply{}, nil, lastErr
}
