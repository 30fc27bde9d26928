package main

import "errors"

type Config struct {
	AgentPath   string
	ContextPath string
	NodePath    string
	Token       string
	Turn        int
	LeadKey     string
	OutPath     string
	EnvFile     string

	AdjustmentFromStore bool
}

func (c Config) Validate() error {
	if c.AgentPath == "" {
		return errors.New("missing -agent")
	}
	if c.Turn < -1 {
		return errors.New("-turn must be >= 0 (or -1 to derive it from the history)")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Turn: -1,
	}
}
