package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/debug"
	"github.com/rhuss/autobot/pkg/provider"
)

const providerName = "openai"

// Config holds configuration for a Chat Completions backend.
type Config struct {
	// BaseURL is the server URL without the /v1 suffix (e.g., "http://localhost:8000").
	BaseURL string

	// APIKey is sent as a Bearer token when set.
	APIKey string

	// Model is used when a request does not name one.
	Model string

	// Timeout for individual HTTP requests. Defaults to 120s.
	Timeout time.Duration
}

// Provider sends prompts to an OpenAI-compatible backend.
type Provider struct {
	cfg        Config
	httpClient *http.Client
}

var _ provider.Generator = (*Provider)(nil)

// New creates a Provider. BaseURL and Model are required.
func New(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("openaicompat: BaseURL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openaicompat: Model is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string { return providerName }

// Generate sends the prompt as a single user message and returns the
// first choice's content.
func (p *Provider) Generate(ctx context.Context, req *provider.Request) (resp *provider.Response, err error) {
	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	start := time.Now()
	defer func() { provider.Observe(providerName, model, start, resp, err) }()

	chatReq := chatCompletionRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		N:           1,
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = &req.MaxTokens
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	url := p.cfg.BaseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	debug.Log("providers", "chat completion request", "url", url, "model", model, "prompt_len", len(req.Prompt))

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, provider.MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, provider.MapHTTPError(httpResp)
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&chatResp); err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to parse backend response: %s", err.Error()))
	}
	if len(chatResp.Choices) == 0 {
		return nil, api.NewModelError("backend returned no choices")
	}

	resp = &provider.Response{
		Model: chatResp.Model,
		Text:  chatResp.Choices[0].Message.Content,
	}
	if resp.Model == "" {
		resp.Model = model
	}
	if chatResp.Usage != nil {
		resp.Usage = provider.Usage{
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
		}
	}

	debug.Log("providers", "chat completion response",
		"model", resp.Model,
		"finish_reason", chatResp.Choices[0].FinishReason,
		"text_len", len(resp.Text),
	)
	return resp, nil
}

// Close releases client resources.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
