// Command autobot runs Python and Java programs through the local
// toolchain and relays coding prompts to a text-generation service.
//
// Subcommands:
//
//	serve     start the HTTP and MCP server
//	run       execute a source file
//	ask       send a prompt and print the answer
//	explain   ask for the expected output of a source file
//	sanitize  strip code fences from stdin
//	new       print a Hello World starter program
//	version   print version information
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(submain(context.Background(), os.Args[1:]))
}

func submain(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("autobot command failed", "error", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "autobot",
		Short:         "Run Python and Java code and relay coding prompts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml (default: $AUTOBOT_CONFIG, ./config.yaml, /etc/autobot/config.yaml)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newAskCmd(flags))
	root.AddCommand(newExplainCmd(flags))
	root.AddCommand(newSanitizeCmd())
	root.AddCommand(newNewCmd())
	root.AddCommand(newVersionCmd())

	return root
}
