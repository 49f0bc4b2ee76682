package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/debug"
	"github.com/rhuss/autobot/pkg/observability"
	"github.com/rhuss/autobot/pkg/provider"
)

// Input errors returned before any remote call.
var (
	ErrEmptyPrompt         = api.NewInvalidRequestError("prompt", "prompt is required").WithCode("empty_prompt")
	ErrProhibitedDelimiter = api.NewInvalidRequestError("prompt", "Prohibited delimiters detected. Please remove them from your prompt.").WithCode("prohibited_delimiter")
)

const explainTemplate = "I have written the following code in %s:\n\n%s\n\nCan you provide Expected output same as traditional compilers and at the end code explanation?"

// Relay sends prompts to a Generator.
type Relay struct {
	gen         provider.Generator
	model       string
	maxTokens   int
	temperature *float64
}

// Option configures a Relay.
type Option func(*Relay)

// WithModel overrides the generator's default model.
func WithModel(model string) Option {
	return func(r *Relay) { r.model = model }
}

// WithMaxTokens caps the length of generated answers.
func WithMaxTokens(n int) Option {
	return func(r *Relay) { r.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(r *Relay) { r.temperature = &t }
}

// New creates a Relay around gen.
func New(gen provider.Generator, opts ...Option) *Relay {
	r := &Relay{gen: gen}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate relays a free-form prompt and returns the raw answer.
// Empty prompts and prompts containing a code fence are rejected
// without contacting the provider.
func (r *Relay) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		observability.RelayRejectedTotal.WithLabelValues("empty").Inc()
		return "", ErrEmptyPrompt
	}
	if ContainsDelimiter(prompt) {
		observability.RelayRejectedTotal.WithLabelValues("delimiter").Inc()
		debug.Log("relay", "prompt rejected", "reason", "delimiter", "prompt", debug.Truncate(prompt, 80))
		return "", ErrProhibitedDelimiter
	}
	return r.send(ctx, prompt)
}

// Explain asks for the expected output and an explanation of source.
// The source is embedded verbatim, fences included.
func (r *Relay) Explain(ctx context.Context, lang api.Language, source string) (string, error) {
	if !lang.Valid() {
		return "", api.NewInvalidRequestError("language",
			fmt.Sprintf("unsupported language %q (supported: python, java)", lang))
	}
	return r.send(ctx, ExplainPrompt(lang, source))
}

// ExplainPrompt builds the prompt Explain sends.
func ExplainPrompt(lang api.Language, source string) string {
	return fmt.Sprintf(explainTemplate, lang.DisplayName(), source)
}

// Insert returns generated text cleaned for use as the new source buffer.
func (r *Relay) Insert(text string) string {
	return Sanitize(text)
}

func (r *Relay) send(ctx context.Context, prompt string) (string, error) {
	debug.Log("relay", "sending prompt",
		"provider", r.gen.Name(),
		"prompt_len", len(prompt),
		"prompt", debug.Truncate(prompt, 80),
	)

	resp, err := r.gen.Generate(ctx, &provider.Request{
		Model:       r.model,
		Prompt:      prompt,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	})
	if err != nil {
		slog.Warn("prompt relay failed", "provider", r.gen.Name(), "error", err)
		return "", err
	}
	debug.Trace("relay", "prompt answered", "model", resp.Model, "text_len", len(resp.Text))
	debug.Raw("relay", resp.Text)
	return resp.Text, nil
}
