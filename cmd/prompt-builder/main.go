package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"unicode/utf8"

	"github.com/theimaginaryfoundation/axis-agent/salesagent"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/appconfig"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/fileutils"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, app, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "prompt-builder: %s\n", err.Error())
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.AgentPath, "agent", cfg.AgentPath, "Agent configuration file (.json, .yaml or .yml)")
	fs.StringVar(&cfg.ContextPath, "context", cfg.ContextPath, "Conversation context file (campaign, lead, history, node directive, scope)")
	fs.StringVar(&cfg.NodePath, "node", cfg.NodePath, "Workflow node objective file (goal, required slots, CTAs)")
	fs.StringVar(&cfg.Token, "token", cfg.Token, `Security canary token; "auto" generates one`)
	fs.IntVar(&cfg.Turn, "turn", cfg.Turn, "Turn number for the persona refresh cadence (-1 derives it from the context history)")
	fs.StringVar(&cfg.LeadKey, "lead", cfg.LeadKey, "PAD store key (defaults to <lead id>:<agent id>)")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Write the prompt to this file instead of stdout")
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Optional .env file with AXIS_* settings")
	fs.BoolVar(&cfg.AdjustmentFromStore, "adjustment-from-store", false, "Read the lead's PAD vector from the configured AXIS_STORE instead of the context file")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/prompt-builder -agent examples/agent.yaml -context examples/context.json -node examples/node.json -token auto")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type inputs struct {
	agent salesagent.AgentConfig
	cc    salesagent.ConversationContext
	node  *salesagent.NodeConfig
}

func loadInputs(cfg Config, logger *slog.Logger) (inputs, error) {
	var in inputs

	agent, warnings, err := salesagent.LoadAgentConfigFile(cfg.AgentPath)
	if err != nil {
		return inputs{}, err
	}
	for _, w := range warnings {
		logger.Warn("agent config", "file", cfg.AgentPath, "warning", w)
	}
	in.agent = agent

	in.cc = salesagent.ConversationContext{Scope: salesagent.ScopeReadOnly}
	if cfg.ContextPath != "" {
		cc, err := salesagent.LoadContextFile(cfg.ContextPath)
		if err != nil {
			return inputs{}, err
		}
		in.cc = cc
	}

	if cfg.NodePath != "" {
		node, warnings, err := salesagent.LoadNodeConfigFile(cfg.NodePath)
		if err != nil {
			return inputs{}, err
		}
		for _, w := range warnings {
			logger.Warn("node config", "file", cfg.NodePath, "warning", w)
		}
		in.node = &node
	}
	return in, nil
}

func run(ctx context.Context, cfg Config, app appconfig.Config, logger *slog.Logger, stdout io.Writer) error {
	in, err := loadInputs(cfg, logger)
	if err != nil {
		return err
	}

	token := cfg.Token
	if token == "auto" {
		token = salesagent.NewSecurityToken()
	}
	turn := cfg.Turn
	if turn < 0 {
		turn = salesagent.CountTurns(in.cc.History) + 1
	}

	adjustment := ""
	switch {
	case cfg.AdjustmentFromStore:
		key := cfg.LeadKey
		if key == "" {
			key = salesagent.LeadKey(&in.agent, &in.cc)
		}
		store, closeStore, err := appconfig.OpenStore(ctx, app.Store, logger)
		if err != nil {
			return err
		}
		defer closeStore()
		v := emotion.NewModel(store, emotion.WithLogger(logger)).GetVector(ctx, key)
		logger.Debug("pad from store", "key", key, "pad", v.String())
		adjustment = emotion.AdjustmentText(v)
		if in.cc.Lead != nil {
			in.cc.Lead.EmotionalState = &v
		}
	case in.cc.Lead != nil && in.cc.Lead.EmotionalState != nil:
		adjustment = emotion.AdjustmentText(*in.cc.Lead.EmotionalState)
	}

	prompt := salesagent.BuildSystemPrompt(&in.agent, &in.cc, adjustment, in.node, token, turn)
	logger.Info("prompt built", "agent", in.agent.Name, "turn", turn, "runes", utf8.RuneCountInString(prompt))

	if cfg.OutPath != "" {
		if err := fileutils.WriteFileAtomicSameDir(cfg.OutPath, []byte(prompt), 0o644); err != nil {
			return fmt.Errorf("write -out: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(stdout, prompt)
	return err
}
