package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhuss/autobot/pkg/api"
)

func newNewCmd() *cobra.Command {
	var (
		lang   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print a Hello World starter program for a language",
		Long: "New prints the starter program for --lang. With --output the program\n" +
			"is written to that file instead; an existing file is not overwritten.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := api.ParseLanguage(lang)
			if err != nil {
				return err
			}
			source := language.StarterProgram() + "\n"
			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), source)
				return err
			}

			f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				return fmt.Errorf("creating starter file: %w", err)
			}
			if _, err := f.WriteString(source); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "python", "language of the starter program (python or java)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the program to this file")
	return cmd
}
