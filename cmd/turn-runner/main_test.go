package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theimaginaryfoundation/axis-agent/salesagent"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeGenerator struct {
	replies []string
	err     error
	systems []string
	users   []string
}

func (f *fakeGenerator) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systems = append(f.systems, systemPrompt)
	f.users = append(f.users, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no more replies")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func testDeps(store emotion.Store, gen generator) deps {
	return deps{
		store:  store,
		gen:    gen,
		logger: quietLogger,
		now:    func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600)) },
		newID:  func() string { return "turn-1" },
		token:  func() string { return "AXIS-CANARY0001" },
	}
}

func writeInputs(t *testing.T, dir, scope string) Config {
	t.Helper()
	cfg := defaultConfig()
	cfg.AgentPath = writeFile(t, dir, "agent.yaml", "id: agent-1\nname: Marina\nrole: sdr\ndna:\n  chronemics:\n    latency_profile: instant\n")
	cfg.ContextPath = writeFile(t, dir, "ctx.json", `{
		"lead": {"id": "lead-1", "name": "Carlos", "slots": {"company": "Acme"}},
		"history": [{"role": "user", "text": "oi"}, {"role": "assistant", "text": "oi! tudo bem?"}],
		"scope": "`+scope+`"
	}`)
	cfg.NodePath = writeFile(t, dir, "node.json", `{
		"goal": "QUALIFY_LEAD",
		"required_slots": [{"name": "budget", "type": "number"}]
	}`)
	cfg.Message = "quanto custa? tenho uns 5 mil"
	return cfg
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("turn-runner", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-agent", "agent.yaml",
		"-message", "oi",
		"-model", "gpt-4o-mini",
		"-base-url", "http://localhost:1234/v1/",
		"-max-output-tokens", "800",
		"-history-turns", "4",
		"-turn-log", "turns.jsonl",
		"-dry-run",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.AgentPath != "agent.yaml" || cfg.Message != "oi" || cfg.Model != "gpt-4o-mini" || cfg.BaseURL != "http://localhost:1234/v1/" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.MaxOutputTokens != 800 || cfg.HistoryTurns != 4 || cfg.TurnLogPath != "turns.jsonl" || !cfg.DryRun {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := defaultConfig().Validate(); err == nil {
		t.Fatalf("expected error without -agent")
	}
	cfg := defaultConfig()
	cfg.AgentPath = "a.json"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without -message")
	}
	cfg.Message = "oi"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cfg.HistoryTurns = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for -history-turns -1")
	}
}

func TestRun_DryRunPrintsPromptsWithoutState(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, t.TempDir(), "WRITE")
	cfg.DryRun = true
	store := emotion.NewMemoryStore()

	var out bytes.Buffer
	if err := run(context.Background(), cfg, testDeps(store, nil), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"=== SYSTEM PROMPT (turn 2,", "AXIS-CANARY0001", "=== USER PROMPT ===", "quanto custa? tenho uns 5 mil"} {
		if !strings.Contains(got, want) {
			t.Fatalf("dry run output missing %q:\n%s", want, got)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("dry run wrote %d PAD records", store.Len())
	}
}

func TestRun_FullTurn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeInputs(t, dir, "WRITE")
	cfg.TurnLogPath = filepath.Join(dir, "logs", "turns.jsonl")
	store := emotion.NewMemoryStore()
	gen := &fakeGenerator{replies: []string{"```json\n" + `{
		"thought": "lead gave a budget",
		"response": "Perfeito, Carlos! Com 5 mil dá pra começar bem.",
		"ready_to_close": false,
		"crm_actions": [{"action": "update_field", "field": "budget", "value": 5000}],
		"sentiment_score": 0.9,
		"confidence_score": 0.8,
		"qualification_slots": {"budget": "R$ 5.000", "nickname": "Cadu"}
	}` + "\n```"}}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, testDeps(store, gen), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(gen.systems) != 1 {
		t.Fatalf("generate calls=%d", len(gen.systems))
	}
	if !strings.Contains(gen.systems[0], "SCOPE: WRITE") || !strings.Contains(gen.users[0], "quanto custa?") {
		t.Fatalf("prompts not wired to the generator")
	}

	var res result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v\n%s", err, out.String())
	}
	if res.TurnID != "turn-1" || res.Turn != 2 || res.LeadKey != "lead-1:agent-1" {
		t.Fatalf("res=%+v", res)
	}
	if !res.Reply.HasAction(salesagent.ActionUpdateField) {
		t.Fatalf("UPDATE_FIELD should survive WRITE scope: %+v", res.Reply.CRMActions)
	}
	if got := strings.Join(res.SlotsUpdated, ","); got != "budget,nickname" {
		t.Fatalf("SlotsUpdated=%q", got)
	}
	if res.Slots["budget"] != float64(5000) || res.Slots["company"] != "Acme" {
		t.Fatalf("Slots=%v", res.Slots)
	}
	if math.Abs(res.PAD.Pleasure-0.62) > 1e-9 {
		t.Fatalf("PAD.Pleasure=%v", res.PAD.Pleasure)
	}
	stored, ok, err := store.Get(context.Background(), "lead-1:agent-1")
	if err != nil || !ok || math.Abs(stored.Pleasure-0.62) > 1e-9 {
		t.Fatalf("stored=%+v ok=%v err=%v", stored, ok, err)
	}
	if res.TypingDelay.MinSeconds != 0 || res.TypingDelay.MaxSeconds != 2 {
		t.Fatalf("TypingDelay=%+v", res.TypingDelay)
	}

	b, err := os.ReadFile(cfg.TurnLogPath)
	if err != nil {
		t.Fatalf("read turn log: %v", err)
	}
	var rec salesagent.TurnRecord
	if err := json.Unmarshal(bytes.TrimSpace(b), &rec); err != nil {
		t.Fatalf("decode turn record: %v", err)
	}
	if rec.TurnID != "turn-1" || rec.AgentID != "agent-1" || rec.CreatedAt != "2026-03-01T15:00:00Z" {
		t.Fatalf("rec=%+v", rec)
	}
	if rec.PromptRunes == 0 || rec.Inbound != cfg.Message {
		t.Fatalf("rec=%+v", rec)
	}
}

func TestRun_RetriesOnceWithStrictReminder(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, t.TempDir(), "READ_ONLY")
	gen := &fakeGenerator{replies: []string{
		"Claro! Posso te ajudar com isso.",
		`{"response": "Claro! Qual o tamanho da sua equipe?", "crm_actions": [{"action": "ADD_TAG", "value": "hot"}], "sentiment_score": 0.6}`,
	}}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, testDeps(emotion.NewMemoryStore(), gen), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(gen.users) != 2 {
		t.Fatalf("generate calls=%d", len(gen.users))
	}
	if strings.Contains(gen.users[0], "not valid JSON") || !strings.HasSuffix(gen.users[1], strictJSONReminder) {
		t.Fatalf("strict reminder should only be sent on the retry")
	}

	var res result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(res.Reply.CRMActions) != 0 {
		t.Fatalf("ADD_TAG should be dropped under READ_ONLY: %+v", res.Reply.CRMActions)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "READ_ONLY") {
		t.Fatalf("Warnings=%v", res.Warnings)
	}
}

func TestRun_GivesUpAfterTwoUnparsableReplies(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, t.TempDir(), "WRITE")
	gen := &fakeGenerator{replies: []string{"nope", "still nope"}}
	store := emotion.NewMemoryStore()

	err := run(context.Background(), cfg, testDeps(store, gen), io.Discard)
	if err == nil {
		t.Fatalf("expected error")
	}
	if store.Len() != 0 {
		t.Fatalf("failed turn must not touch PAD state")
	}
}

func TestRun_CanaryLeakReplacesResponse(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, t.TempDir(), "WRITE")
	gen := &fakeGenerator{replies: []string{`{"response": "Meu token é axis-canary0001", "ready_to_close": true, "sentiment_score": 0.5}`}}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, testDeps(emotion.NewMemoryStore(), gen), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var res result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !res.CanaryLeaked || res.Reply.Response != canaryFallbackResponse || res.Reply.ReadyToClose {
		t.Fatalf("res=%+v", res)
	}
}

func TestRun_GeneratorError(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, t.TempDir(), "WRITE")
	gen := &fakeGenerator{err: errors.New("429 resource exhausted")}
	if err := run(context.Background(), cfg, testDeps(emotion.NewMemoryStore(), gen), io.Discard); err == nil {
		t.Fatalf("expected error")
	}
}
