package main

import (
	"errors"
	"strings"
)

type Config struct {
	AgentPath   string
	ContextPath string
	NodePath    string
	Message     string

	Model           string
	BaseURL         string
	APIKey          string
	MaxOutputTokens int64

	HistoryTurns int
	TurnLogPath  string
	EnvFile      string
	DryRun       bool
}

func (c Config) Validate() error {
	if c.AgentPath == "" {
		return errors.New("missing -agent")
	}
	if strings.TrimSpace(c.Message) == "" {
		return errors.New("missing -message")
	}
	if c.HistoryTurns < 0 {
		return errors.New("-history-turns must be >= 0")
	}
	if c.MaxOutputTokens <= 0 {
		return errors.New("-max-output-tokens must be > 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		HistoryTurns:    10,
		MaxOutputTokens: 1200,
	}
}
