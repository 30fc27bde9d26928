package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/appconfig"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		flag.CommandLine.Usage()
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

	if err := run(ctx, cfg, app.Store, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pad-state: %s\n", err.Error())
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.Float64Var(&cfg.Decay, "decay", cfg.Decay, "Weight the previous pleasure keeps on update")
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Optional .env file with AXIS_* settings")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags] get <lead-key>\n  %s [flags] update <lead-key> <sentiment>\n  %s [flags] delete <lead-key>\n  %s [flags] adjust <pleasure> <arousal> <dominance>\n\nFlags:\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  AXIS_STORE=redis go run ./cmd/pad-state update lead-1:agent-1 0.9")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	args = fs.Args()
	// Flags may also follow the command's arguments: "update <key> <sentiment> -decay 0.5".
	if len(args) > 0 {
		if n := 1 + positional[args[0]]; n > 1 && len(args) > n {
			if err := fs.Parse(args[n:]); err != nil {
				return Config{}, err
			}
			if fs.NArg() > 0 {
				return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
			}
			args = args[:n]
		}
	}
	if err := parseArgs(&cfg, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type stateOutput struct {
	Key    string         `json:"key,omitempty"`
	PAD    emotion.Vector `json:"pad"`
	Label  string         `json:"label"`
	Prompt string         `json:"prompt_adjustment,omitempty"`
}

func run(ctx context.Context, cfg Config, storeCfg appconfig.StoreConfig, logger *slog.Logger, stdout io.Writer) error {
	if cfg.Command == cmdAdjust {
		v := emotion.Vector{Pleasure: cfg.Vector[0], Arousal: cfg.Vector[1], Dominance: cfg.Vector[2]}.Clamp()
		return writeState(stdout, "", v)
	}

	store, closeStore, err := appconfig.OpenStore(ctx, storeCfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	model := emotion.NewModel(store, emotion.WithLogger(logger))

	switch cfg.Command {
	case cmdGet:
		return writeState(stdout, cfg.Key, model.GetVector(ctx, cfg.Key))
	case cmdUpdate:
		v, err := model.UpdateWithDecay(ctx, cfg.Key, cfg.Sentiment, cfg.Decay)
		if err != nil {
			return err
		}
		logger.Info("pad updated", "key", cfg.Key, "sentiment", cfg.Sentiment, "pad", v.String())
		return writeState(stdout, cfg.Key, v)
	case cmdDelete:
		if err := model.Delete(ctx, cfg.Key); err != nil {
			return err
		}
		logger.Info("pad deleted", "key", cfg.Key)
		return nil
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

func writeState(w io.Writer, key string, v emotion.Vector) error {
	b, err := json.MarshalIndent(stateOutput{Key: key, PAD: v, Label: v.Label(), Prompt: emotion.AdjustmentText(v)}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
