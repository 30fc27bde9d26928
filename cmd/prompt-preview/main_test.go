package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*server, *emotion.MemoryStore) {
	t.Helper()
	store := emotion.NewMemoryStore()
	return &server{
		model:        emotion.NewModel(store, emotion.WithLogger(quietLogger)),
		logger:       quietLogger,
		maxBodyBytes: 1 << 20,
	}, store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(flag.NewFlagSet("prompt-preview", flag.ContinueOnError), []string{"-addr", ":9090", "-shutdown-timeout", "3s", "-max-body-bytes", "2048"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.NoError(t, cfg.Validate())

	cfg.MaxBodyBytes = 0
	require.Error(t, cfg.Validate())
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := do(t, srv.router(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPreviewPrompt(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	body := `{
		"agent": {"id": "agent-1", "name": "Marina", "role": "sdr", "dna": {"psychometrics": {"openness": "enormous"}}},
		"context": {"lead": {"id": "lead-1", "emotional_state": {"pleasure": 0.1, "arousal": 0.5, "dominance": 0.5}}, "scope": "WRITE"},
		"node": {"goal": "SCHEDULE_MEETING", "allowed_ctas": ["SCHEDULE_CALL"]},
		"token": "AXIS-PREVIEW",
		"turn": 6
	}`
	rec := do(t, srv.router(), http.MethodPost, "/v1/prompts/preview", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Turn)
	assert.Equal(t, "AXIS-PREVIEW", resp.Token)
	assert.Equal(t, "lead-1:agent-1", resp.LeadKey)
	assert.Contains(t, resp.Prompt, "AXIS-PREVIEW")
	assert.Contains(t, resp.Prompt, "You are Marina")
	assert.Contains(t, resp.Prompt, "### PERSONA CHECK")
	assert.Contains(t, resp.Prompt, "SCOPE: WRITE")
	assert.Contains(t, resp.Adjustment, "unhappy or frustrated")
	assert.Equal(t, len([]rune(resp.Prompt)), resp.Runes)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "enormous")
}

func TestPreviewPrompt_UsesStoreWhenAsked(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	require.NoError(t, store.Upsert(context.Background(), "lead-7:agent-1", emotion.Vector{Pleasure: 0.9, Arousal: 0.5, Dominance: 0.9}))

	body := `{"agent": {"id": "agent-1", "name": "Marina"}, "context": {"lead": {"id": "lead-7"}}, "use_store": true}`
	rec := do(t, srv.router(), http.MethodPost, "/v1/prompts/preview", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Turn)
	assert.True(t, strings.HasPrefix(resp.Token, "AXIS-"), resp.Token)
	assert.Contains(t, resp.Adjustment, "wants control")
	assert.Contains(t, resp.Adjustment, "good mood")
	assert.Contains(t, resp.Prompt, "SCOPE: READ_ONLY")
}

func TestPreviewPrompt_StoredStateGatesClosingSignal(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	require.NoError(t, store.Upsert(context.Background(), "lead-1:agent-1", emotion.Vector{Pleasure: 0.95, Arousal: 0.5, Dominance: 0.5}))

	body := `{
		"agent": {"id": "agent-1", "name": "Marina"},
		"context": {
			"lead": {"id": "lead-1", "last_sentiment": 0.9, "emotional_state": {"pleasure": 0.1, "arousal": 0.5, "dominance": 0.5}},
			"history": [{"role": "user", "text": "oi"}, {"role": "assistant", "text": "oi!"}, {"role": "user", "text": "quero fechar"}]
		},
		"node": {"goal": "SCHEDULE_MEETING"},
		"use_store": true
	}`
	rec := do(t, srv.router(), http.MethodPost, "/v1/prompts/preview", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Adjustment, "good mood")
	assert.Contains(t, resp.Prompt, "CLOSING SIGNAL")
}

func TestPreviewPrompt_BadRequests(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	h := srv.router()
	for name, body := range map[string]string{
		"not json":      `{`,
		"missing agent": `{"context": {}}`,
		"bad context":   `{"agent": {"name": "X"}, "context": "oops"}`,
		"negative turn": `{"agent": {"name": "X"}, "turn": -1}`,
	} {
		rec := do(t, h, http.MethodPost, "/v1/prompts/preview", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestPreviewPrompt_BodyLimit(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	srv.maxBodyBytes = 64
	body := `{"agent": {"name": "` + strings.Repeat("x", 200) + `"}}`
	rec := do(t, srv.router(), http.MethodPost, "/v1/prompts/preview", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdjustmentEndpoint_Clamps(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := do(t, srv.router(), http.MethodPost, "/v1/emotional-state/adjustment", `{"pleasure": -3, "arousal": 2, "dominance": 0.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, emotion.Vector{Pleasure: 0, Arousal: 1, Dominance: 0.5}, resp.PAD)
	assert.Equal(t, "unhappy+agitated", resp.Label)
	assert.Contains(t, resp.Adjustment, "De-escalate")
}

func TestEmotionalStateEndpoint(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	require.NoError(t, store.Upsert(context.Background(), "lead-1:agent-1", emotion.Vector{Pleasure: 0.2, Arousal: 0.2, Dominance: 0.5}))
	h := srv.router()

	rec := do(t, h, http.MethodGet, "/v1/emotional-state/lead-1:agent-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "lead-1:agent-1", resp.Key)
	assert.Equal(t, "unhappy+calm", resp.Label)

	rec = do(t, h, http.MethodGet, "/v1/emotional-state/unknown", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = stateResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, emotion.Neutral(), resp.PAD)
	assert.Empty(t, resp.Adjustment)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, srv.router(), defaultConfig(), quietLogger) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/healthz")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return after cancel")
	}
}
