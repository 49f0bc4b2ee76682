package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rhuss/autobot/pkg/relay"
)

func newSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize",
		Short: "Remove code fences from stdin and write the result to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), relay.Sanitize(string(data)))
			return err
		},
	}
}
