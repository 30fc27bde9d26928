package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

const (
	cmdGet    = "get"
	cmdUpdate = "update"
	cmdDelete = "delete"
	cmdAdjust = "adjust"
)

type Config struct {
	Command string
	Key     string

	// Sentiment is the update argument; Vector holds the three adjust arguments.
	Sentiment float64
	Vector    [3]float64

	Decay   float64
	EnvFile string
}

func (c Config) Validate() error {
	switch c.Command {
	case cmdGet, cmdDelete, cmdUpdate:
		if c.Key == "" {
			return fmt.Errorf("%s: missing <lead-key>", c.Command)
		}
	case cmdAdjust:
	case "":
		return errors.New("missing command (get, update, delete or adjust)")
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}
	if c.Decay < 0 || c.Decay > 1 {
		return errors.New("-decay must be within [0,1]")
	}
	return nil
}

func defaultConfig() Config {
	return Config{Decay: emotion.DefaultDecay}
}

// positional is the argument count of each command.
var positional = map[string]int{cmdGet: 1, cmdDelete: 1, cmdUpdate: 2, cmdAdjust: 3}

// parseArgs fills the command and its positional arguments from what flag parsing left over.
func parseArgs(cfg *Config, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cfg.Command = args[0]
	rest := args[1:]
	want := positional[cfg.Command]
	if want == 0 {
		return nil
	}
	if len(rest) != want {
		return fmt.Errorf("%s: expected %d argument(s), got %d", cfg.Command, want, len(rest))
	}
	switch cfg.Command {
	case cmdGet, cmdDelete:
		cfg.Key = rest[0]
	case cmdUpdate:
		cfg.Key = rest[0]
		f, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("update: sentiment %q: %w", rest[1], err)
		}
		cfg.Sentiment = f
	case cmdAdjust:
		for i, s := range rest {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("adjust: %q: %w", s, err)
			}
			cfg.Vector[i] = f
		}
	}
	return nil
}
