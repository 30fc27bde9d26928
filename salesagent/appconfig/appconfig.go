// Package appconfig loads the process configuration shared by the axis commands: environment
// (with an optional .env file), logging and the PAD store backend.
package appconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/provider"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type StoreConfig struct {
	Kind          string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
}

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func (c LLMConfig) Provider() provider.Config {
	return provider.Config{BaseURL: c.BaseURL, APIKey: c.APIKey}
}

type Config struct {
	Store     StoreConfig
	LLM       LLMConfig
	LogLevel  string
	LogFormat string
	HTTPAddr  string
}

// Load reads the configuration from the environment. Values from envFiles (or ./.env when none
// are given and it exists) fill variables the environment leaves unset; the process
// environment is not modified.
func Load(envFiles ...string) (Config, error) {
	fileVals := map[string]string{}
	if len(envFiles) == 0 {
		vals, err := godotenv.Read()
		switch {
		case err == nil:
			fileVals = vals
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("appconfig.Load: .env: %w", err)
		}
	} else {
		vals, err := godotenv.Read(envFiles...)
		if err != nil {
			return Config{}, fmt.Errorf("appconfig.Load: %w", err)
		}
		fileVals = vals
	}

	return FromLookup(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVals[key]
	})
}

// FromLookup builds a Config from a variable lookup function.
func FromLookup(get func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(get(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Store: StoreConfig{
			Kind:          strings.ToLower(env("AXIS_STORE", StoreMemory)),
			Dir:           env("AXIS_STORE_DIR", "data/pad"),
			RedisAddr:     env("AXIS_REDIS_ADDR", "localhost:6379"),
			RedisPassword: env("AXIS_REDIS_PASSWORD", ""),
			PostgresDSN:   env("AXIS_POSTGRES_DSN", ""),
		},
		LLM: LLMConfig{
			BaseURL: env("AXIS_LLM_BASE_URL", provider.DefaultBaseURL),
			APIKey:  env("AXIS_LLM_API_KEY", env("GEMINI_API_KEY", "")),
			Model:   env("AXIS_LLM_MODEL", provider.DefaultModel),
		},
		LogLevel:  env("AXIS_LOG_LEVEL", "info"),
		LogFormat: env("AXIS_LOG_FORMAT", "text"),
		HTTPAddr:  env("AXIS_HTTP_ADDR", ":8080"),
	}

	if raw := env("AXIS_REDIS_DB", "0"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("appconfig: AXIS_REDIS_DB must be a non-negative integer, got %q", raw)
		}
		cfg.Store.RedisDB = db
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory:
	case StoreFile:
		if c.Store.Dir == "" {
			return errors.New("appconfig: AXIS_STORE=file requires AXIS_STORE_DIR")
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("appconfig: AXIS_STORE=redis requires AXIS_REDIS_ADDR")
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("appconfig: AXIS_STORE=postgres requires AXIS_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("appconfig: unknown AXIS_STORE %q (want memory, file, redis or postgres)", c.Store.Kind)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		return fmt.Errorf("appconfig: unknown AXIS_LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger. format is "text" or "json".
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("appconfig: unknown log format %q", format)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("appconfig: unknown log level %q", s)
}

// OpenStore opens the configured PAD store. The returned close function releases its
// connections and is never nil.
func OpenStore(ctx context.Context, cfg StoreConfig, logger *slog.Logger) (emotion.Store, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() error { return nil }

	switch cfg.Kind {
	case "", StoreMemory:
		logger.Debug("appconfig.OpenStore: memory store")
		return emotion.NewMemoryStore(), noop, nil
	case StoreFile:
		s, err := emotion.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, noop, fmt.Errorf("appconfig.OpenStore: %w", err)
		}
		logger.Debug("appconfig.OpenStore: file store", "dir", cfg.Dir)
		return s, noop, nil
	case StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("appconfig.OpenStore: redis ping %s: %w", cfg.RedisAddr, err)
		}
		logger.Debug("appconfig.OpenStore: redis store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return emotion.NewRedisStore(rdb), rdb.Close, nil
	case StorePostgres:
		db, err := emotion.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("appconfig.OpenStore: %w", err)
		}
		s, err := emotion.NewPostgresStore(ctx, db, emotion.PostgresConfig{AutoMigrate: true})
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("appconfig.OpenStore: %w", err)
		}
		logger.Debug("appconfig.OpenStore: postgres store")
		return s, db.Close, nil
	}
	return nil, noop, fmt.Errorf("appconfig.OpenStore: unknown store %q", cfg.Kind)
}
