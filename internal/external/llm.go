package external

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultLLMBaseURL = "https://openrouter.ai/api/v1"
	defaultLLMModel   = "google/gemini-2.0-flash-001"
)

var ErrLLMNotConfigured = errors.New("llm api key not configured")

// CompletionRequest is one system+user chat turn.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Completer is anything that can answer a chat completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type LLMOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
}

// LLMClient talks to an OpenAI-compatible chat completion endpoint
// (OpenRouter by default).
type LLMClient struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewLLMClient(opts LLMOptions) *LLMClient {
	base := opts.BaseURL
	if base == "" {
		base = defaultLLMBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultLLMModel
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimRight(base, "/")
	cfg.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": opts.Referer,
				"X-Title":      opts.Title,
			},
		},
	}

	return &LLMClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		apiKey: opts.APIKey,
	}
}

func (c *LLMClient) Enabled() bool { return c.apiKey != "" }

func (c *LLMClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !c.Enabled() {
		return "", ErrLLMNotConfigured
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w: no choices", ErrMalformedPayload)
	}
	return resp.Choices[0].Message.Content, nil
}

// headerTransport adds fixed headers to every request. Empty values are skipped.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			r.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(r)
}
