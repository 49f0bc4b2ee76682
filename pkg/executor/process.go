package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rhuss/autobot/pkg/debug"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren after the direct child was killed.
const waitDelay = 2 * time.Second

type outcome int

const (
	outcomeExited outcome = iota
	outcomeTimedOut
	outcomeCancelled
)

// procResult is what a single subprocess invocation produced.
type procResult struct {
	stdout   string
	stderr   string
	exitCode int
	outcome  outcome
}

// runProcess runs name with args in dir under a wall-clock timeout.
// Output written before a kill is kept. A non-nil error means the
// process could not be started or waited on.
func runProcess(ctx context.Context, timeout time.Duration, dir, name string, args ...string) (procResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	debug.Log("executor", "exec", "cmd", name, "args", args, "dir", dir, "timeout", timeout)

	err := cmd.Run()
	res := procResult{stdout: stdout.String(), stderr: stderr.String()}

	// Context state takes precedence over the exit error: a killed
	// process reports "signal: killed", which is not the cause.
	switch {
	case ctx.Err() != nil:
		res.outcome = outcomeCancelled
		res.exitCode = -1
		return res, nil
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.outcome = outcomeTimedOut
		res.exitCode = -1
		if res.stderr != "" && !strings.HasSuffix(res.stderr, "\n") {
			res.stderr += "\n"
		}
		res.stderr += fmt.Sprintf("execution timed out after %s", timeout)
		return res, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.exitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", name, err)
	}
	return res, nil
}
