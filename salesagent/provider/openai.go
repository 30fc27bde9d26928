// Package provider talks to the LLM behind the sales agent through any OpenAI-compatible chat
// completions endpoint (Gemini by default).
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.0-flash"
)

type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds one HTTP request; 0 keeps the client default.
	Timeout time.Duration
	// MaxRetries is the client's own retry count. CallWithRetry adds the long back-off on top.
	MaxRetries int
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("provider: missing API key")
	}
	return nil
}

func NewClient(cfg Config) (*openai.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	client := openai.NewClient(opts...)
	return &client, nil
}

// RetryPolicy holds the waits between attempts; the number of attempts is len(waits)+1 for
// whichever error class keeps failing.
type RetryPolicy struct {
	RateLimitWaits   []time.Duration
	ServerErrorWaits []time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		RateLimitWaits:   []time.Duration{65 * time.Second, 100 * time.Second},
		ServerErrorWaits: []time.Duration{5 * time.Second, 30 * time.Second},
	}
}

// Retry runs fn until it succeeds, fails with a non-retryable error or runs out of waits.
// Waits honor ctx.
func Retry[T any](ctx context.Context, policy RetryPolicy, logger *slog.Logger, fn func(context.Context) (T, error)) (T, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var zero T
	rateLimited, serverErrors := 0, 0
	for {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}

		var wait time.Duration
		switch {
		case isRateLimitError(err) && rateLimited < len(policy.RateLimitWaits):
			wait = policy.RateLimitWaits[rateLimited]
			rateLimited++
		case isServerError(err) && serverErrors < len(policy.ServerErrorWaits):
			wait = policy.ServerErrorWaits[serverErrors]
			serverErrors++
		default:
			return zero, err
		}

		logger.Warn("llm call failed, retrying", "wait", wait, "attempt", rateLimited+serverErrors, "err", err)
		if err := sleep(ctx, wait); err != nil {
			return zero, err
		}
	}
}

// CallWithRetry sends one chat completion request with the given policy.
func CallWithRetry(ctx context.Context, client *openai.Client, params openai.ChatCompletionNewParams, policy RetryPolicy, logger *slog.Logger) (*openai.ChatCompletion, error) {
	return Retry(ctx, policy, logger, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return client.Chat.Completions.New(ctx, params)
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "resource_exhausted")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 500 {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error") ||
		strings.Contains(errStr, "unavailable")
}

// Generator produces one structured model reply from a system prompt and a user prompt.
type Generator struct {
	Client          *openai.Client
	Model           string
	MaxOutputTokens int64
	// Temperature is sent only when > 0.
	Temperature float64

	// Schema, when set, is sent as the json_schema response format under SchemaName.
	Schema     map[string]any
	SchemaName string

	Retry  RetryPolicy
	Logger *slog.Logger
}

// ErrEmptyCompletion is returned when the endpoint answers without any message content.
var ErrEmptyCompletion = errors.New("completion has no content")

func (g Generator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.Client == nil {
		return "", errors.New("Generator: client is nil")
	}
	model := g.Model
	if model == "" {
		model = DefaultModel
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	if g.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(g.MaxOutputTokens)
	}
	if g.Temperature > 0 {
		params.Temperature = openai.Float(g.Temperature)
	}
	if g.Schema != nil {
		name := g.SchemaName
		if name == "" {
			name = "reply"
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        name,
					Schema:      g.Schema,
					Strict:      openai.Bool(false),
					Description: openai.String("Sales agent reply JSON"),
				},
			},
		}
	}

	resp, err := CallWithRetry(ctx, g.Client, params, g.Retry, g.Logger)
	if err != nil {
		return "", fmt.Errorf("Generator.Generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("Generator.Generate: %w", ErrEmptyCompletion)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("Generator.Generate: finish_reason=%s: %w", resp.Choices[0].FinishReason, ErrEmptyCompletion)
	}
	return content, nil
}
