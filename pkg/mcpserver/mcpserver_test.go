package mcpserver

import (
	"context"
	"os/exec"
	"slices"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/executor"
	"github.com/rhuss/autobot/pkg/provider"
	"github.com/rhuss/autobot/pkg/relay"
	"github.com/rhuss/autobot/pkg/transport"
)

type fakeGenerator struct{}

func (fakeGenerator) Name() string { return "fake" }
func (fakeGenerator) Close() error { return nil }
func (fakeGenerator) Generate(_ context.Context, req *provider.Request) (*provider.Response, error) {
	return &provider.Response{Text: "answer: " + req.Prompt[:5]}, nil
}

func newOrchestrator(t *testing.T, python string) *executor.Orchestrator {
	t.Helper()
	e, err := executor.New(executor.Config{Python: python, WorkDir: t.TempDir(), RunTimeout: 10 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	return executor.NewOrchestrator(e)
}

func connect(t *testing.T, runs transport.RunManager, pr transport.PromptRelay, opts ...Option) *mcp.ClientSession {
	t.Helper()
	server := New(runs, pr, "test", opts...)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()
	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool %s: %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("%s content is %T, want *mcp.TextContent", name, result.Content[0])
	}
	return text.Text, result.IsError
}

func toolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestToolsRegistered(t *testing.T) {
	withRelay := connect(t, newOrchestrator(t, "python3"), relay.New(fakeGenerator{}))
	names := toolNames(t, withRelay)
	for _, want := range []string{ToolRunCode, ToolGenerateCode, ToolExplainCode, ToolSanitizeCode} {
		if !slices.Contains(names, want) {
			t.Errorf("missing tool %s in %v", want, names)
		}
	}

	withoutRelay := connect(t, newOrchestrator(t, "python3"), nil)
	names = toolNames(t, withoutRelay)
	if slices.Contains(names, ToolGenerateCode) {
		t.Errorf("generate_code registered without relay: %v", names)
	}
}

func TestRunCode(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not installed")
	}
	session := connect(t, newOrchestrator(t, "cat"), nil)

	text, isErr := callText(t, session, ToolRunCode, map[string]any{"language": "python", "source": "hi"})
	if isErr {
		t.Fatalf("run_code reported error: %s", text)
	}
	if text != "Output:\nhi\n\nErrors:\n" {
		t.Errorf("text = %q", text)
	}
}

func TestRunCodeInputError(t *testing.T) {
	session := connect(t, newOrchestrator(t, "python3"), nil)

	text, isErr := callText(t, session, ToolRunCode, map[string]any{"language": "java", "source": "class A {}"})
	if !isErr {
		t.Fatal("expected tool error")
	}
	if text != "no public class found in Java code" {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateAndExplain(t *testing.T) {
	session := connect(t, newOrchestrator(t, "python3"), relay.New(fakeGenerator{}))

	text, isErr := callText(t, session, ToolGenerateCode, map[string]any{"prompt": "hello world"})
	if isErr || text != "answer: hello" {
		t.Errorf("generate_code = %q (error %v)", text, isErr)
	}

	text, isErr = callText(t, session, ToolGenerateCode, map[string]any{"prompt": "``` fenced"})
	if !isErr || text != "Prohibited delimiters detected. Please remove them from your prompt." {
		t.Errorf("generate_code with fence = %q (error %v)", text, isErr)
	}

	text, isErr = callText(t, session, ToolExplainCode, map[string]any{"language": "python", "source": "print(1)"})
	if isErr || text != "answer: I hav" {
		t.Errorf("explain_code = %q (error %v)", text, isErr)
	}
}

func TestSanitizeCode(t *testing.T) {
	session := connect(t, newOrchestrator(t, "python3"), nil)

	text, isErr := callText(t, session, ToolSanitizeCode, map[string]any{"text": "```python\nprint(1)\n```"})
	if isErr || text != "\nprint(1)\n" {
		t.Errorf("sanitize_code = %q (error %v)", text, isErr)
	}
}

func TestSizeLimits(t *testing.T) {
	limits := api.ValidationConfig{MaxSourceSize: 8, MaxPromptSize: 8}
	session := connect(t, newOrchestrator(t, "python3"), relay.New(fakeGenerator{}), WithValidation(limits))

	text, isErr := callText(t, session, ToolRunCode, map[string]any{"language": "python", "source": "print('too long')"})
	if !isErr || text != "source exceeds maximum size of 8 bytes" {
		t.Errorf("run_code = %q (error %v)", text, isErr)
	}

	text, isErr = callText(t, session, ToolGenerateCode, map[string]any{"prompt": "a prompt that is too long"})
	if !isErr || text != "prompt exceeds maximum size of 8 bytes" {
		t.Errorf("generate_code = %q (error %v)", text, isErr)
	}
}
