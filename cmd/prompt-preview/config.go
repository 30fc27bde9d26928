package main

import (
	"errors"
	"time"
)

type Config struct {
	// Addr overrides AXIS_HTTP_ADDR when set.
	Addr            string
	EnvFile         string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

func (c Config) Validate() error {
	if c.ShutdownTimeout <= 0 {
		return errors.New("-shutdown-timeout must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("-max-body-bytes must be > 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}
