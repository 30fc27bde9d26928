package appconfig

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/provider"
)

func lookup(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestFromLookup_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromLookup(lookup(nil))
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Kind)
	assert.Equal(t, provider.DefaultBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, provider.DefaultModel, cfg.LLM.Model)
	assert.Equal(t, "", cfg.LLM.APIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestFromLookup_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := FromLookup(lookup(map[string]string{
		"AXIS_STORE":      "Redis",
		"AXIS_REDIS_ADDR": "cache:6380",
		"AXIS_REDIS_DB":   "3",
		"GEMINI_API_KEY":  "g-key",
		"AXIS_LOG_LEVEL":  "debug",
		"AXIS_LOG_FORMAT": "json",
	}))
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "cache:6380", cfg.Store.RedisAddr)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, "g-key", cfg.LLM.Provider().APIKey)

	cfg, err = FromLookup(lookup(map[string]string{"AXIS_LLM_API_KEY": "axis", "GEMINI_API_KEY": "g"}))
	require.NoError(t, err)
	assert.Equal(t, "axis", cfg.LLM.APIKey)
}

func TestFromLookup_Invalid(t *testing.T) {
	t.Parallel()

	cases := []map[string]string{
		{"AXIS_STORE": "sqlite"},
		{"AXIS_STORE": "postgres"},
		{"AXIS_REDIS_DB": "-1"},
		{"AXIS_REDIS_DB": "one"},
		{"AXIS_LOG_LEVEL": "chatty"},
		{"AXIS_LOG_FORMAT": "xml"},
	}
	for _, vals := range cases {
		if _, err := FromLookup(lookup(vals)); err == nil {
			t.Fatalf("vals=%v: expected error", vals)
		}
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(p, []byte("AXIS_STORE=file\nAXIS_STORE_DIR=/tmp/axis-pad\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, "/tmp/axis-pad", cfg.Store.Dir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "lead", "lead-1")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"lead":"lead-1"`)

	_, err = NewLogger(&buf, "info", "yaml")
	assert.Error(t, err)
}

func TestOpenStore_Backends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, closeFn, err := OpenStore(ctx, StoreConfig{Kind: StoreMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &emotion.MemoryStore{}, s)
	assert.NoError(t, closeFn())

	dir := filepath.Join(t.TempDir(), "pad")
	s, _, err = OpenStore(ctx, StoreConfig{Kind: StoreFile, Dir: dir}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(ctx, "lead:agent", emotion.Vector{Pleasure: 0.2, Arousal: 0.5, Dominance: 0.5}))
	got, ok, err := s.Get(ctx, "lead:agent")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.2, got.Pleasure)

	mr := miniredis.RunT(t)
	s, closeFn, err = OpenStore(ctx, StoreConfig{Kind: StoreRedis, RedisAddr: mr.Addr()}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(ctx, "l:a", emotion.Neutral()))
	assert.True(t, mr.Exists(emotion.DefaultRedisPrefix+"l:a"))
	assert.NoError(t, closeFn())

	_, _, err = OpenStore(ctx, StoreConfig{Kind: "etcd"}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown store"))
}

func TestOpenStore_RedisDown(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, closeFn, err := OpenStore(context.Background(), StoreConfig{Kind: StoreRedis, RedisAddr: addr}, nil)
	require.Error(t, err)
	assert.NotNil(t, closeFn)
}
