package provider

import "context"

// Generator turns a prompt into generated text.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Generator interface {
	// Name returns the provider identifier (e.g., "gemini").
	Name() string

	// Generate sends one prompt and waits for the complete answer.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}

// Request is a single-turn generation request.
type Request struct {
	// Model overrides the adapter's default model when non-empty.
	Model string

	Prompt string

	// MaxTokens caps the answer length. Zero leaves the backend default.
	MaxTokens int

	Temperature *float64
}

// Response is the backend's answer.
type Response struct {
	Model string
	Text  string
	Usage Usage
}

// Usage reports token counts when the backend returns them.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
