package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/debug"
)

// handler compiles and/or runs one language.
type handler interface {
	// filename derives the source file name. It fails on input errors.
	filename(source string) (string, error)

	// run invokes the toolchain and fills result. The source has already
	// been written. A returned error is an infrastructure failure.
	run(ctx context.Context, req api.RunRequest, result *api.RunResult) error
}

// pythonFile is the fixed file Python source is written to.
const pythonFile = "main.py"

type pythonHandler struct {
	e *Executor
}

func (h *pythonHandler) filename(string) (string, error) {
	return pythonFile, nil
}

func (h *pythonHandler) run(ctx context.Context, req api.RunRequest, result *api.RunResult) error {
	proc, err := runProcess(ctx, h.e.cfg.RunTimeout, h.e.workDir, h.e.cfg.Python, req.Filename)
	if err != nil {
		return err
	}
	applyOutcome(result, proc)
	return nil
}

// Java identifiers may use any Unicode letter, so \w (ASCII only) is
// not enough.
var publicClassPattern = regexp.MustCompile(`public\s+class\s+([\p{L}_$][\p{L}\p{Mn}\p{Mc}\p{N}_$]*)`)

// ClassName returns the name of the first public class declared in
// Java source.
func ClassName(source string) (string, error) {
	m := publicClassPattern.FindStringSubmatch(source)
	if m == nil {
		return "", ErrNoPublicClass
	}
	return m[1], nil
}

type javaHandler struct {
	e *Executor
}

func (h *javaHandler) filename(source string) (string, error) {
	class, err := ClassName(source)
	if err != nil {
		return "", err
	}
	return class + ".java", nil
}

func (h *javaHandler) run(ctx context.Context, req api.RunRequest, result *api.RunResult) error {
	class := strings.TrimSuffix(req.Filename, ".java")
	dir := h.e.workDir

	if h.e.cfg.CleanArtifacts {
		if err := removeClassFiles(dir, class); err != nil {
			return err
		}
	}

	compile, err := runProcess(ctx, h.e.cfg.CompileTimeout, dir, h.e.cfg.Javac, req.Filename)
	if err != nil {
		return err
	}
	if compile.outcome != outcomeExited {
		applyOutcome(result, compile)
		return nil
	}
	if compile.stderr != "" || compile.exitCode != 0 {
		result.Status = api.RunStatusCompileError
		result.ExitCode = compile.exitCode
		result.Stdout = compile.stdout
		result.Stderr = compile.stderr
		result.CompileError = compile.stderr
		if result.CompileError == "" {
			result.CompileError = fmt.Sprintf("javac exited with status %d", compile.exitCode)
		}
		debug.Log("executor", "compile failed", "id", result.ID, "class", class)
		return nil
	}

	proc, err := runProcess(ctx, h.e.cfg.RunTimeout, dir, h.e.cfg.Java, "-cp", dir, class)
	if err != nil {
		return err
	}
	applyOutcome(result, proc)
	return nil
}

// removeClassFiles deletes class files left over from a previous compile
// of the same class, including nested and anonymous classes.
func removeClassFiles(dir, class string) error {
	nested, err := filepath.Glob(filepath.Join(dir, class+"$*.class"))
	if err != nil {
		return fmt.Errorf("listing class files: %w", err)
	}
	for _, path := range append(nested, filepath.Join(dir, class+".class")) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func applyOutcome(result *api.RunResult, proc procResult) {
	result.Stdout = proc.stdout
	result.Stderr = proc.stderr
	result.ExitCode = proc.exitCode
	switch proc.outcome {
	case outcomeTimedOut:
		result.Status = api.RunStatusTimedOut
	case outcomeCancelled:
		result.Status = api.RunStatusCancelled
	default:
		result.Status = api.RunStatusCompleted
	}
}
