package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/debug"
	"github.com/rhuss/autobot/pkg/provider"
)

const providerName = "gemini"

// Defaults.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"
)

// Config holds configuration for the Gemini provider.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// APIKey is sent in the x-goog-api-key header. Required.
	APIKey string

	// Model defaults to DefaultModel.
	Model string

	// Timeout for individual HTTP requests. Defaults to 120s.
	Timeout time.Duration
}

// Provider sends prompts to Gemini.
type Provider struct {
	cfg        Config
	httpClient *http.Client
}

var _ provider.Generator = (*Provider)(nil)

// New creates a Provider. The API key is required.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: APIKey is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
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

// Generate sends the prompt as a single user turn and concatenates the
// text parts of the first candidate.
func (p *Provider) Generate(ctx context.Context, req *provider.Request) (resp *provider.Response, err error) {
	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	start := time.Now()
	defer func() { provider.Observe(providerName, model, start, resp, err) }()

	genReq := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
	}
	if req.MaxTokens > 0 || req.Temperature != nil {
		genReq.GenerationConfig = &generationConfig{
			MaxOutputTokens: req.MaxTokens,
			Temperature:     req.Temperature,
		}
	}

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.cfg.BaseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.cfg.APIKey)

	debug.Log("providers", "generateContent request", "model", model, "prompt_len", len(req.Prompt))

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, provider.MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, provider.MapHTTPError(httpResp)
	}

	var genResp generateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&genResp); err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to parse backend response: %s", err.Error()))
	}

	if len(genResp.Candidates) == 0 {
		if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
			return nil, api.NewModelError("prompt blocked: " + genResp.PromptFeedback.BlockReason)
		}
		return nil, api.NewModelError("backend returned no candidates")
	}

	first := genResp.Candidates[0]
	var text strings.Builder
	for _, pt := range first.Content.Parts {
		text.WriteString(pt.Text)
	}
	if text.Len() == 0 && first.FinishReason != "" && first.FinishReason != "STOP" {
		return nil, api.NewModelError("generation stopped: " + first.FinishReason)
	}

	resp = &provider.Response{Model: model, Text: text.String()}
	if genResp.ModelVersion != "" {
		resp.Model = genResp.ModelVersion
	}
	if genResp.UsageMetadata != nil {
		resp.Usage = provider.Usage{
			InputTokens:  genResp.UsageMetadata.PromptTokenCount,
			OutputTokens: genResp.UsageMetadata.CandidatesTokenCount,
		}
	}

	debug.Log("providers", "generateContent response",
		"model", resp.Model,
		"finish_reason", first.FinishReason,
		"text_len", len(resp.Text),
	)
	return resp, nil
}

// Close releases client resources.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
