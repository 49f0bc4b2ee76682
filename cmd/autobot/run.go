package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/executor"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Compile and run a Python or Java source file",
		Long: "Run executes FILE with the configured toolchain and prints its output.\n" +
			"Use - to read the program from stdin together with --lang.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := languageFor(lang, args[0])
			if err != nil {
				return err
			}
			source, err := readSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			exec, err := newExecutor(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := runTask(ctx, executor.NewOrchestrator(exec), language, source, func(p int) {
				fmt.Fprintf(cmd.ErrOrStderr(), "progress: %d%%\n", p)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.FormatOutput())
			if result.Status != api.RunStatusCompleted {
				return fmt.Errorf("run %s: %s", result.ID, result.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "source language (python or java); inferred from the file extension when empty")
	return cmd
}

// runTask starts a run and waits for it, forwarding progress. When ctx
// ends first the run is cancelled and its cancelled result returned.
func runTask(ctx context.Context, orch *executor.Orchestrator, lang api.Language, source string, progress func(int)) (*api.RunResult, error) {
	task, err := orch.Start(ctx, lang, source)
	if err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, task.Cancel)
	defer stop()

	for p := range task.Progress() {
		progress(p)
	}
	<-task.Done()
	return task.Snapshot(), nil
}
