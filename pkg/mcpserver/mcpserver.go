// Package mcpserver exposes the run and prompt-relay operations as MCP
// tools so editors and agents can drive them over the Model Context
// Protocol.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/debug"
	"github.com/rhuss/autobot/pkg/observability"
	"github.com/rhuss/autobot/pkg/relay"
	"github.com/rhuss/autobot/pkg/transport"
)

// Tool names.
const (
	ToolRunCode      = "run_code"
	ToolGenerateCode = "generate_code"
	ToolExplainCode  = "explain_code"
	ToolSanitizeCode = "sanitize_code"
)

// RunInput is the argument of run_code.
type RunInput struct {
	Language string `json:"language" jsonschema:"python or java"`
	Source   string `json:"source" jsonschema:"complete program source"`
}

// GenerateInput is the argument of generate_code.
type GenerateInput struct {
	Prompt string `json:"prompt" jsonschema:"what to generate; must not contain code fences"`
}

// ExplainInput is the argument of explain_code.
type ExplainInput struct {
	Language string `json:"language" jsonschema:"python or java"`
	Source   string `json:"source" jsonschema:"program source to explain"`
}

// SanitizeInput is the argument of sanitize_code.
type SanitizeInput struct {
	Text string `json:"text" jsonschema:"generated text to strip code fences from"`
}

// Option configures the tools.
type Option func(*tools)

// WithValidation sets the source and prompt size limits. It should
// match the HTTP adapter's limits.
func WithValidation(cfg api.ValidationConfig) Option {
	return func(t *tools) { t.validation = cfg }
}

// New builds an MCP server. The relay is optional; without it only
// run_code and sanitize_code are registered.
func New(runs transport.RunManager, pr transport.PromptRelay, version string, opts ...Option) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "autobot", Version: version}, nil)
	t := &tools{runs: runs, relay: pr, validation: api.DefaultValidationConfig()}
	for _, opt := range opts {
		opt(t)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolRunCode,
		Description: "Compile and run a Python or Java program and return its output",
	}, t.runCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSanitizeCode,
		Description: "Remove code fences from generated text so it can be used as source",
	}, t.sanitizeCode)

	if pr != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        ToolGenerateCode,
			Description: "Ask the text-generation service to write code for a prompt",
		}, t.generateCode)

		mcp.AddTool(server, &mcp.Tool{
			Name:        ToolExplainCode,
			Description: "Ask for the expected output and an explanation of a program",
		}, t.explainCode)
	}

	return server
}

// Handler serves server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

type tools struct {
	runs       transport.RunManager
	relay      transport.PromptRelay
	validation api.ValidationConfig
}

func (t *tools) runCode(ctx context.Context, _ *mcp.CallToolRequest, in RunInput) (*mcp.CallToolResult, struct{}, error) {
	lang, apiErr := api.ValidateRunRequest(&api.CreateRunRequest{Language: in.Language, Source: in.Source}, t.validation)
	if apiErr != nil {
		return toolError(ToolRunCode, apiErr), struct{}{}, nil
	}

	task, err := t.runs.Start(ctx, lang, in.Source)
	if err != nil {
		return toolError(ToolRunCode, err), struct{}{}, nil
	}
	result, err := task.Await(ctx)
	if err != nil {
		task.Cancel()
		return toolError(ToolRunCode, err), struct{}{}, nil
	}

	debug.Log("mcp", "run_code finished", "id", result.ID, "status", result.Status)
	observability.ToolCallsTotal.WithLabelValues(ToolRunCode, "ok").Inc()
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.FormatOutput()}},
		IsError: result.Status != api.RunStatusCompleted,
	}, struct{}{}, nil
}

func (t *tools) generateCode(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, struct{}, error) {
	if apiErr := api.ValidatePromptSize(in.Prompt, t.validation); apiErr != nil {
		return toolError(ToolGenerateCode, apiErr), struct{}{}, nil
	}
	text, err := t.relay.Generate(ctx, in.Prompt)
	if err != nil {
		return toolError(ToolGenerateCode, err), struct{}{}, nil
	}
	return toolText(ToolGenerateCode, text), struct{}{}, nil
}

func (t *tools) explainCode(ctx context.Context, _ *mcp.CallToolRequest, in ExplainInput) (*mcp.CallToolResult, struct{}, error) {
	lang, err := api.ParseLanguage(in.Language)
	if err != nil {
		return toolError(ToolExplainCode, err), struct{}{}, nil
	}
	text, err := t.relay.Explain(ctx, lang, in.Source)
	if err != nil {
		return toolError(ToolExplainCode, err), struct{}{}, nil
	}
	return toolText(ToolExplainCode, text), struct{}{}, nil
}

func (t *tools) sanitizeCode(_ context.Context, _ *mcp.CallToolRequest, in SanitizeInput) (*mcp.CallToolResult, struct{}, error) {
	return toolText(ToolSanitizeCode, relay.Sanitize(in.Text)), struct{}{}, nil
}

func toolText(name, text string) *mcp.CallToolResult {
	observability.ToolCallsTotal.WithLabelValues(name, "ok").Inc()
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// toolError reports err to the client as a failed tool call so the
// model can see the message.
func toolError(name string, err error) *mcp.CallToolResult {
	observability.ToolCallsTotal.WithLabelValues(name, "error").Inc()
	debug.Log("mcp", "tool failed", "tool", name, "error", err)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: transport.AsAPIError(err).Message}},
		IsError: true,
	}
}
