package api

import (
	"fmt"
	"strings"
)

// Language identifies a supported source language. The set is closed:
// adding a language means adding a constant here and a handler in the
// executor's dispatch switch.
type Language string

const (
	LanguagePython Language = "python"
	LanguageJava   Language = "java"
)

// Languages lists every supported language in display order.
var Languages = []Language{LanguagePython, LanguageJava}

// ParseLanguage converts a user-supplied language name into a Language.
// Matching is case-insensitive so both "Python" and "python" are accepted.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "py":
		return LanguagePython, nil
	case "java":
		return LanguageJava, nil
	case "":
		return "", NewInvalidRequestError("language", "language is required")
	default:
		return "", NewInvalidRequestError("language",
			fmt.Sprintf("unsupported language %q (supported: python, java)", s))
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguagePython || l == LanguageJava
}

// DisplayName returns the capitalized name used in user-facing text.
func (l Language) DisplayName() string {
	switch l {
	case LanguagePython:
		return "Python"
	case LanguageJava:
		return "Java"
	default:
		return string(l)
	}
}

const (
	pythonStarter = "# A simple python code to print Hello World\n\nprint(\"Hello world!\")"
	javaStarter   = "// A Java Program to print Hello World\n\npublic class HelloWorld {\n    public static void main(String[] args) {\n        System.out.println(\"Hello, World!\");\n    }\n}"
)

// StarterProgram returns the Hello World program loaded when a user
// switches to l. It is empty for unknown languages.
func (l Language) StarterProgram() string {
	switch l {
	case LanguagePython:
		return pythonStarter
	case LanguageJava:
		return javaStarter
	default:
		return ""
	}
}

// StarterFilename is the file name the starter program runs as.
func (l Language) StarterFilename() string {
	switch l {
	case LanguagePython:
		return "main.py"
	case LanguageJava:
		return "HelloWorld.java"
	default:
		return ""
	}
}

// Template is the body of GET /v1/languages/{language}/template.
type Template struct {
	Language Language `json:"language"`
	Filename string   `json:"filename"`
	Source   string   `json:"source"`
}

// RunStatus is the lifecycle state of a RunResult.
type RunStatus string

const (
	RunStatusRunning      RunStatus = "running"
	RunStatusCompleted    RunStatus = "completed"
	RunStatusCompileError RunStatus = "compile_error"
	RunStatusTimedOut     RunStatus = "timed_out"
	RunStatusCancelled    RunStatus = "cancelled"
	RunStatusError        RunStatus = "error"
)

// Terminal reports whether the status is final.
func (s RunStatus) Terminal() bool {
	return s != RunStatusRunning && s != ""
}

// RunRequest is one execution attempt. Filename is derived from Language
// and Source and is never supplied by the caller.
type RunRequest struct {
	Language Language `json:"language"`
	Source   string   `json:"source"`
	Filename string   `json:"filename"`
}

// RunResult carries the captured output of one execution attempt.
// A non-zero ExitCode with stderr output and a clean run are both
// reported with status completed; the caller reads the text.
type RunResult struct {
	ID           string    `json:"id"`
	Language     Language  `json:"language"`
	Filename     string    `json:"filename,omitempty"`
	Status       RunStatus `json:"status"`
	Stdout       string    `json:"stdout"`
	Stderr       string    `json:"stderr"`
	CompileError string    `json:"compile_error,omitempty"`
	ExitCode     int       `json:"exit_code"`
	DurationMs   int64     `json:"duration_ms"`
	Progress     int       `json:"progress"`
}

// FormatOutput renders the result the way the output view shows it.
func (r *RunResult) FormatOutput() string {
	stderr := r.Stderr
	if r.Status == RunStatusCompileError && stderr == "" {
		stderr = r.CompileError
	}
	return fmt.Sprintf("Output:\n%s\n\nErrors:\n%s", r.Stdout, stderr)
}

// PromptExchange is one prompt and the text generated for it.
type PromptExchange struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
}

// CreateRunRequest is the body of POST /v1/runs.
type CreateRunRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
	Async    bool   `json:"async,omitempty"`
}

// GenerateRequest is the body of POST /v1/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// ExplainRequest is the body of POST /v1/explain.
type ExplainRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

// SanitizeRequest is the body of POST /v1/sanitize.
type SanitizeRequest struct {
	Text string `json:"text"`
}

// SanitizeResponse is the reply to POST /v1/sanitize.
type SanitizeResponse struct {
	Text string `json:"text"`
}

// RunEventType identifies a server-sent run event.
type RunEventType string

const (
	EventRunProgress  RunEventType = "run.progress"
	EventRunCompleted RunEventType = "run.completed"
)

// RunEvent is one server-sent event on a run's event stream.
type RunEvent struct {
	Type     RunEventType `json:"type"`
	RunID    string       `json:"run_id"`
	Progress int          `json:"progress"`
	Result   *RunResult   `json:"result,omitempty"`
}
