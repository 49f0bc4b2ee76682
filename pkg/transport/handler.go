package transport

import (
	"context"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/executor"
)

// RunManager starts runs and looks up the current one.
type RunManager interface {
	// Start validates the source and launches a run. It returns
	// executor.ErrRunInProgress while another run occupies the slot.
	Start(ctx context.Context, lang api.Language, source string) (*executor.Task, error)

	// Lookup returns the task with the given ID if it is the current run.
	Lookup(id string) *executor.Task

	// Toolchains reports which compilers and interpreters are installed.
	Toolchains() []executor.Toolchain
}

// PromptRelay sends prompts to a text-generation provider.
type PromptRelay interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Explain(ctx context.Context, lang api.Language, source string) (string, error)
}
