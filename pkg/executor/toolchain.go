package executor

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds each "--version" probe so a hung toolchain
// cannot stall detection.
var versionTimeout = 5 * time.Second

// Toolchain describes one external command the executor depends on.
type Toolchain struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Available bool   `json:"available"`
}

// DetectToolchains reports which configured commands resolve in PATH
// and their version strings. Each call launches the version commands;
// Orchestrator.Toolchains caches the result.
func (e *Executor) DetectToolchains() []Toolchain {
	return []Toolchain{
		detect("python", e.cfg.Python, "--version"),
		detect("javac", e.cfg.Javac, "-version"),
		detect("java", e.cfg.Java, "-version"),
	}
}

func detect(name, command, versionFlag string) Toolchain {
	tc := Toolchain{Name: name, Command: command}
	path, err := exec.LookPath(command)
	if err != nil {
		return tc
	}
	tc.Path = path
	tc.Available = true

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, path, versionFlag)
	cmd.WaitDelay = time.Second

	// java and older javac print the version on stderr.
	out, err := cmd.CombinedOutput()
	if err != nil {
		tc.Version = "unknown"
		return tc
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.Index(version, "\n"); idx > 0 {
		version = version[:idx]
	}
	tc.Version = version
	return tc
}
