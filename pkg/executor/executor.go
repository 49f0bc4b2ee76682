package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/debug"
	"github.com/rhuss/autobot/pkg/observability"
)

// Progress values reported during a run.
const (
	ProgressStarted  = 50
	ProgressFinished = 100
)

// Defaults applied by New for zero-valued Config fields.
const (
	DefaultRunTimeout     = 20 * time.Second
	DefaultCompileTimeout = 60 * time.Second
)

// Sentinel input errors.
var (
	ErrNoPublicClass = api.NewInvalidRequestError("source", "no public class found in Java code").WithCode("no_public_class")
	ErrRunInProgress = api.NewConflictError("a run is already in progress").WithCode("run_in_progress")
)

// ProgressFunc receives progress percentages while a run advances.
type ProgressFunc func(percent int)

// Config holds the toolchain commands and limits.
type Config struct {
	Python string
	Javac  string
	Java   string

	// WorkDir receives the source file and, for Java, the class files.
	WorkDir string

	RunTimeout     time.Duration
	CompileTimeout time.Duration

	// CleanArtifacts removes <Class>.class and <Class>$*.class before
	// compiling so a failed compile never leaves an older class runnable.
	CleanArtifacts bool
}

// Executor compiles and runs source code in a single work directory.
type Executor struct {
	cfg     Config
	workDir string
}

// New creates an Executor. The work directory is resolved to an absolute
// path and created if missing.
func New(cfg Config) (*Executor, error) {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	if cfg.Javac == "" {
		cfg.Javac = "javac"
	}
	if cfg.Java == "" {
		cfg.Java = "java"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}
	if cfg.CompileTimeout <= 0 {
		cfg.CompileTimeout = DefaultCompileTimeout
	}

	dir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolving work dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}

	return &Executor{cfg: cfg, workDir: dir}, nil
}

// WorkDir returns the absolute work directory.
func (e *Executor) WorkDir() string {
	return e.workDir
}

// Prepare validates the language and derives the file name the source
// will be written to. It touches nothing on disk.
func (e *Executor) Prepare(lang api.Language, source string) (api.RunRequest, error) {
	h, err := e.handlerFor(lang)
	if err != nil {
		return api.RunRequest{}, err
	}
	filename, err := h.filename(source)
	if err != nil {
		return api.RunRequest{}, err
	}
	return api.RunRequest{Language: lang, Source: source, Filename: filename}, nil
}

// Execute runs source synchronously and returns its captured output.
func (e *Executor) Execute(ctx context.Context, lang api.Language, source string) (*api.RunResult, error) {
	req, err := e.Prepare(lang, source)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, api.NewRunID(), req, nil), nil
}

// Run executes a prepared request. It always returns a terminal result.
func (e *Executor) Run(ctx context.Context, id string, req api.RunRequest, progress ProgressFunc) *api.RunResult {
	if progress == nil {
		progress = func(int) {}
	}

	result := &api.RunResult{
		ID:       id,
		Language: req.Language,
		Filename: req.Filename,
		Status:   api.RunStatusRunning,
	}

	h, err := e.handlerFor(req.Language)
	if err != nil {
		e.fail(result, err)
		return e.finish(result, time.Now(), progress)
	}

	debug.Log("executor", "run starting",
		"id", id,
		"language", req.Language,
		"file", req.Filename,
		"source", debug.Truncate(req.Source, 120),
	)
	debug.Raw("executor", req.Source)

	observability.RunsInFlight.Inc()
	defer observability.RunsInFlight.Dec()

	start := time.Now()
	path := filepath.Join(e.workDir, req.Filename)
	if err := os.WriteFile(path, []byte(req.Source), 0o644); err != nil {
		e.fail(result, fmt.Errorf("writing %s: %w", req.Filename, err))
		return e.finish(result, start, progress)
	}

	progress(ProgressStarted)
	result.Progress = ProgressStarted

	if err := h.run(ctx, req, result); err != nil {
		e.fail(result, err)
	}
	return e.finish(result, start, progress)
}

func (e *Executor) handlerFor(lang api.Language) (handler, error) {
	switch lang {
	case api.LanguagePython:
		return &pythonHandler{e: e}, nil
	case api.LanguageJava:
		return &javaHandler{e: e}, nil
	default:
		return nil, api.NewInvalidRequestError("language",
			fmt.Sprintf("unsupported language %q (supported: python, java)", lang))
	}
}

// fail turns an infrastructure error into an error result.
func (e *Executor) fail(result *api.RunResult, err error) {
	slog.Warn("run failed", "id", result.ID, "language", result.Language, "error", err)
	result.Status = api.RunStatusError
	result.ExitCode = -1
	result.Stderr = "An unexpected error occurred: " + err.Error()
}

func (e *Executor) finish(result *api.RunResult, start time.Time, progress ProgressFunc) *api.RunResult {
	elapsed := time.Since(start)
	result.DurationMs = elapsed.Milliseconds()
	result.Progress = ProgressFinished
	progress(ProgressFinished)

	observability.RunsTotal.WithLabelValues(string(result.Language), string(result.Status)).Inc()
	observability.RunDuration.WithLabelValues(string(result.Language)).Observe(elapsed.Seconds())

	debug.Log("executor", "run finished",
		"id", result.ID,
		"status", result.Status,
		"exit_code", result.ExitCode,
		"duration_ms", result.DurationMs,
		"stdout_len", len(result.Stdout),
		"stderr_len", len(result.Stderr),
	)
	return result
}
